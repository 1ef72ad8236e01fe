package landing

import (
	"bytes"
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
)

const sheetJSON = `{
  "settings": {
    "business_name": "Cape Sites",
    "tagline": "Websites that just work",
    "whatsapp": "082 123 4567",
    "email": "hello@capesites.co.za",
    "primary_color": "#0a7"
  },
  "services": [
    {"name": "Starter", "description": "One page", "from_price": 1000},
    {"name": "Growth", "description": "Five pages", "from_price": "2500"}
  ],
  "faq": [{"question": "How long?", "answer": "About a week."}]
}`

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
}

func newSheetServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Cache-Control"); got != "no-store" {
			t.Errorf("sheet request Cache-Control = %q, want no-store", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestHandler(t *testing.T, sheetURL string) http.Handler {
	t.Helper()
	h, err := NewHandler(Config{
		SheetAPIURL: sheetURL,
		Now:         fixedNow,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func parseHTML(t *testing.T, body []byte) *html.Node {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse response html: %v", err)
	}
	return root
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

func countScripts(n *html.Node, match func(*html.Node) bool) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == "script" && match(n) {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countScripts(c, match)
	}
	return count
}

func isAlert(n *html.Node) bool {
	return strings.HasPrefix(textOf(n), "alert(")
}

func TestPageRendersSheetContent(t *testing.T) {
	t.Parallel()

	sheetSrv := newSheetServer(t, http.StatusOK, sheetJSON)
	h := newTestHandler(t, sheetSrv.URL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "capesites.co.za"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q", got)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}

	root := parseHTML(t, rr.Body.Bytes())
	for id, want := range map[string]string{
		"year":               "2026",
		"businessName":       "Cape Sites",
		"businessNameFooter": "Cape Sites",
		"h1":                 "Websites that just work",
		"location":           "Western Cape",
		"emailText":          "hello@capesites.co.za",
	} {
		if got := textOf(findByID(root, id)); got != want {
			t.Fatalf("#%s = %q, want %q", id, got, want)
		}
	}
	services := textOf(findByID(root, "services"))
	for _, marker := range []string{"Starter", "From R1,000", "Growth", "From R2,500"} {
		if !strings.Contains(services, marker) {
			t.Fatalf("services missing %q: %q", marker, services)
		}
	}
	if got := textOf(findByID(root, "faq")); !strings.Contains(got, "About a week.") {
		t.Fatalf("faq = %q", got)
	}

	ldJSON := countScripts(root, func(n *html.Node) bool {
		for _, a := range n.Attr {
			if a.Key == "type" && a.Val == "application/ld+json" {
				return strings.Contains(textOf(n), `"url":"http://capesites.co.za/"`)
			}
		}
		return false
	})
	if ldJSON != 1 {
		t.Fatalf("structured data scripts = %d, want 1", ldJSON)
	}
	if alerts := countScripts(root, isAlert); alerts != 0 {
		t.Fatalf("alerts = %d, want 0", alerts)
	}
}

func TestPageRendersFreshShellPerRequest(t *testing.T) {
	t.Parallel()

	sheetSrv := newSheetServer(t, http.StatusOK, sheetJSON)
	h := newTestHandler(t, sheetSrv.URL)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		root := parseHTML(t, rr.Body.Bytes())
		got := countScripts(root, func(n *html.Node) bool {
			for _, a := range n.Attr {
				if a.Key == "type" && a.Val == "application/ld+json" {
					return true
				}
			}
			return false
		})
		if got != 1 {
			t.Fatalf("request %d structured data scripts = %d, want 1", i+1, got)
		}
	}
}

func TestPageFailureStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sheetURL   func(t *testing.T) string
		wantStatus int
		wantAlert  string
	}{
		{
			name:       "missing endpoint",
			sheetURL:   func(*testing.T) string { return "" },
			wantStatus: http.StatusServiceUnavailable,
			wantAlert:  "ALMOST2SIMPLE_SHEET_API_URL",
		},
		{
			name:       "placeholder endpoint",
			sheetURL:   func(*testing.T) string { return "https://script.google.com/macros/s/ignore/exec" },
			wantStatus: http.StatusServiceUnavailable,
			wantAlert:  "ALMOST2SIMPLE_SHEET_API_URL",
		},
		{
			name: "malformed json",
			sheetURL: func(t *testing.T) string {
				return newSheetServer(t, http.StatusOK, `<html>sign in</html>`).URL
			},
			wantStatus: http.StatusBadGateway,
			wantAlert:  "Could not load data from Google Sheet.",
		},
		{
			name: "unreachable endpoint",
			sheetURL: func(t *testing.T) string {
				ln, err := net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					t.Fatalf("listen: %v", err)
				}
				addr := ln.Addr().String()
				_ = ln.Close()
				return "http://" + addr + "/exec"
			},
			wantStatus: http.StatusBadGateway,
			wantAlert:  "Could not load data from Google Sheet.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(t, tc.sheetURL(t))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			root := parseHTML(t, rr.Body.Bytes())
			if got := countScripts(root, isAlert); got != 1 {
				t.Fatalf("alerts = %d, want 1", got)
			}
			if !strings.Contains(rr.Body.String(), tc.wantAlert) {
				t.Fatalf("body missing alert text %q", tc.wantAlert)
			}
			if got := textOf(findByID(root, "services")); got != "Loading services…" {
				t.Fatalf("services container changed: %q", got)
			}
			if got := textOf(findByID(root, "year")); got != "2026" {
				t.Fatalf("year = %q, want 2026", got)
			}
		})
	}
}

func TestNonSuccessStatusWithJSONBodyStillRenders(t *testing.T) {
	t.Parallel()

	sheetSrv := newSheetServer(t, http.StatusInternalServerError, `{"settings":{"business_name":"Oops Co"}}`)
	h := newTestHandler(t, sheetSrv.URL)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	root := parseHTML(t, rr.Body.Bytes())
	if got := textOf(findByID(root, "businessName")); got != "Oops Co" {
		t.Fatalf("businessName = %q", got)
	}
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "")
	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantContain string
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK, wantContain: "ok"},
		{name: "stylesheet", method: http.MethodGet, path: "/static/styles.css", wantStatus: http.StatusOK, wantContain: "--primary"},
		{name: "missing static", method: http.MethodGet, path: "/static/nope.js", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/about", wantStatus: http.StatusNotFound},
		{name: "post page", method: http.MethodPost, path: "/", wantStatus: http.StatusMethodNotAllowed},
		{name: "post health", method: http.MethodPost, path: "/healthz", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantContain != "" && !strings.Contains(rr.Body.String(), tc.wantContain) {
				t.Fatalf("body missing %q", tc.wantContain)
			}
		})
	}
}

func TestStylesheetContentType(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/styles.css", nil))
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/css") {
		t.Fatalf("content-type = %q, want text/css", got)
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenAndServeNilServer(t *testing.T) {
	t.Parallel()

	var srv *Server
	if err := srv.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}
