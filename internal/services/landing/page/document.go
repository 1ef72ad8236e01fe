// Package page models the landing page shell as a mutable DOM.
//
// A Document is parsed fresh for every request, mutated by the renderer and
// serialized once. Required elements are looked up by id; a missing one is
// an error. Optional meta tags that are missing are skipped.
package page

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/louisbranch/almost2simple/internal/platform/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed shell/index.html
var shellHTML []byte

// themeProperty is the CSS custom property carrying the brand color.
const themeProperty = "--primary"

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
	html *html.Node
	head *html.Node
	body *html.Node
}

// NewDocument parses the embedded page shell.
func NewDocument() (*Document, error) {
	return Parse(bytes.NewReader(shellHTML))
}

// Parse builds a Document from an HTML source.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeShellInvalid, "parse page shell", err)
	}
	doc := &Document{root: root}
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.Html:
			doc.html = n
		case atom.Head:
			doc.head = n
		case atom.Body:
			doc.body = n
		}
		return true
	})
	if doc.html == nil || doc.head == nil || doc.body == nil {
		return nil, apperrors.New(apperrors.CodeShellInvalid, "page shell has no html/head/body")
	}
	return doc, nil
}

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// SetText replaces the children of element id with a single text node.
func (d *Document) SetText(id string, text string) error {
	el, err := d.element(id)
	if err != nil {
		return err
	}
	removeChildren(el)
	el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

// SetInnerHTML replaces the children of element id with parsed markup.
func (d *Document) SetInnerHTML(id string, markup string) error {
	el, err := d.element(id)
	if err != nil {
		return err
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), el)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeShellInvalid, fmt.Sprintf("parse markup for #%s", id), err)
	}
	removeChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return nil
}

// SetAttr sets an attribute on element id.
func (d *Document) SetAttr(id string, key string, value string) error {
	el, err := d.element(id)
	if err != nil {
		return err
	}
	setAttr(el, key, value)
	return nil
}

// SetTitle sets the document title, adding a <title> when the shell has none.
func (d *Document) SetTitle(title string) {
	el := d.find(func(n *html.Node) bool { return n.DataAtom == atom.Title })
	if el == nil {
		el = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		d.head.AppendChild(el)
	}
	removeChildren(el)
	el.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// SetMetaContent sets content on the <meta> whose attr equals key, such as
// name="description" or property="og:title". Missing tags are skipped.
func (d *Document) SetMetaContent(attr string, key string, value string) {
	el := d.find(func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && attrValue(n, attr) == key
	})
	if el == nil {
		return
	}
	setAttr(el, "content", value)
}

// SetThemeColor sets the --primary custom property on the root element.
func (d *Document) SetThemeColor(color string) {
	setStyleProperty(d.html, themeProperty, color)
}

// AppendHeadScript appends a <script type=scriptType> holding body to <head>.
func (d *Document) AppendHeadScript(scriptType string, body string) {
	d.head.AppendChild(scriptNode(scriptType, body))
}

// Alert appends a script raising a browser alert with message to <body>.
func (d *Document) Alert(message string) {
	encoded, err := json.Marshal(message)
	if err != nil {
		encoded = []byte(`""`)
	}
	d.body.AppendChild(scriptNode("", "alert("+string(encoded)+");"))
}

// Text returns the text content of element id.
func (d *Document) Text(id string) (string, error) {
	el, err := d.element(id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	walk(el, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String(), nil
}

// InnerHTML returns the serialized children of element id.
func (d *Document) InnerHTML(id string) (string, error) {
	el, err := d.element(id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Attr returns attribute key of element id.
func (d *Document) Attr(id string, key string) (string, error) {
	el, err := d.element(id)
	if err != nil {
		return "", err
	}
	return attrValue(el, key), nil
}

// Title returns the document title.
func (d *Document) Title() string {
	el := d.find(func(n *html.Node) bool { return n.DataAtom == atom.Title })
	if el == nil || el.FirstChild == nil {
		return ""
	}
	return el.FirstChild.Data
}

// MetaContent returns the content of the <meta> whose attr equals key.
func (d *Document) MetaContent(attr string, key string) (string, bool) {
	el := d.find(func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && attrValue(n, attr) == key
	})
	if el == nil {
		return "", false
	}
	return attrValue(el, "content"), true
}

// ThemeColor returns the --primary value set on the root element.
func (d *Document) ThemeColor() string {
	for _, decl := range strings.Split(attrValue(d.html, "style"), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == themeProperty {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// HeadScripts returns the bodies of <head> scripts with the given type.
func (d *Document) HeadScripts(scriptType string) []string {
	return scriptBodies(d.head, scriptType)
}

// Alerts returns the bodies of alert scripts appended to <body>.
func (d *Document) Alerts() []string {
	var out []string
	for _, body := range scriptBodies(d.body, "") {
		if strings.HasPrefix(body, "alert(") {
			out = append(out, body)
		}
	}
	return out
}

func (d *Document) element(id string) (*html.Node, error) {
	el := d.find(func(n *html.Node) bool { return attrValue(n, "id") == id })
	if el == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeElementMissing, fmt.Sprintf("page shell has no #%s", id), map[string]string{"Element": id})
	}
	return el, nil
}

func (d *Document) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits n and its descendants depth-first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func scriptNode(scriptType string, body string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script}
	if scriptType != "" {
		setAttr(n, "type", scriptType)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	return n
}

func scriptBodies(parent *html.Node, scriptType string) []string {
	var out []string
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Script || attrValue(c, "type") != scriptType {
			continue
		}
		if c.FirstChild != nil {
			out = append(out, c.FirstChild.Data)
		} else {
			out = append(out, "")
		}
	}
	return out
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key string, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// setStyleProperty sets one declaration in n's inline style, keeping the rest.
func setStyleProperty(n *html.Node, property string, value string) {
	var decls []string
	for _, decl := range strings.Split(attrValue(n, "style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		if name, _, ok := strings.Cut(decl, ":"); ok && strings.TrimSpace(name) == property {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, property+": "+value)
	setAttr(n, "style", strings.Join(decls, "; "))
}
