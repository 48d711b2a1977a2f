package house

import (
	"net/http"

	"hpportal/internal/httpx"
)

type HTTPHandler struct{}

func NewHTTPHandler() *HTTPHandler {
	return &HTTPHandler{}
}

// List handles GET /api/houses
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	all := All()
	httpx.JSONSuccessWithRequest(r, w, all, map[string]any{"total": len(all)})
}

// Get handles GET /api/houses/{slug}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := BySlug(r.PathValue("slug"))
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "House not found", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, found, nil)
}
