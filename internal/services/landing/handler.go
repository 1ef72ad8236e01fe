package landing

import (
	"bytes"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/almost2simple/internal/platform/errors"
	"github.com/louisbranch/almost2simple/internal/services/landing/page"
	"github.com/louisbranch/almost2simple/internal/services/landing/platform/httpx"
	"github.com/louisbranch/almost2simple/internal/services/landing/platform/requestmeta"
	"github.com/louisbranch/almost2simple/internal/services/landing/render"
)

type pageHandler struct {
	renderer *render.Renderer
	policy   requestmeta.SchemePolicy
	logger   *log.Logger
}

// ServeHTTP renders a fresh copy of the shell for every request. Render
// failures still return the page, carrying the alert, under an error status.
func (h pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	doc, err := page.NewDocument()
	if err != nil {
		h.logger.Printf("load page shell failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderErr := h.renderer.Render(httpx.RequestContext(r), doc, requestmeta.PageURL(r, h.policy))
	if renderErr != nil {
		h.logger.Printf(
			"render page failed request_id=%s code=%s err=%v",
			httpx.RequestIDFrom(r),
			apperrors.CodeOf(renderErr),
			renderErr,
		)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		h.logger.Printf("serialize page failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	_ = httpx.WriteHTML(w, apperrors.HTTPStatus(renderErr), buf.Bytes())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}
