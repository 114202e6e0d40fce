package document

import (
	"net/http"
)

// Register mounts the upload handler. limit wraps it, typically with the
// per-IP rate limiter; nil means no wrapping.
func Register(mux *http.ServeMux, h *Handler, limit func(http.Handler) http.Handler) {
	var handler http.Handler = h
	if limit != nil {
		handler = limit(handler)
	}
	mux.Handle("POST /summarize", handler)
}
