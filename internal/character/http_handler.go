package character

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"hpportal/internal/httpx"
	"hpportal/internal/platform/logger"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// ParsePageRequest reads q, page and page_size from query parameters.
// Unparseable or out-of-range numbers fall back to the defaults, and
// page_size is capped at MaxPageSize.
func ParsePageRequest(values url.Values) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(values.Get("page_size"))
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{
		Query:    values.Get("q"),
		Page:     page,
		PageSize: pageSize,
	}
}

// List handles GET /api/characters
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	req := ParsePageRequest(r.URL.Query())

	res, err := h.service.List(r.Context(), req)
	if err != nil {
		logger.FromContext(r.Context()).Error("list characters", logger.Error(err))
		if errors.Is(err, ErrRemoteFetch) {
			httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Character data is temporarily unavailable", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	meta := map[string]any{
		"q":            res.Query,
		"page":         res.Page,
		"page_size":    res.PageSize,
		"total":        res.Total,
		"total_pages":  res.TotalPages,
		"has_previous": res.HasPrevious,
		"has_next":     res.HasNext,
	}
	if res.HasPrevious {
		meta["previous_page"] = res.PreviousPage
	}
	if res.HasNext {
		meta["next_page"] = res.NextPage
	}
	httpx.JSONSuccessWithRequest(r, w, res.Items, meta)
}

// Status handles GET /api/characters/status
func (h *HTTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.service.Status()
	httpx.JSONSuccessWithRequest(r, w, map[string]any{
		"populated":   st.Populated,
		"size":        st.Size,
		"fetched_at":  st.FetchedAt,
		"age_seconds": int64(st.Age.Seconds()),
		"ttl_seconds": int64(st.TTL.Seconds()),
		"fresh":       st.Fresh,
	}, nil)
}
