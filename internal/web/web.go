// Package web renders the HTML pages of the portal.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hpportal/internal/character"
	"hpportal/internal/house"
	"hpportal/internal/platform/logger"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "houses", "characters", "error"}

type Handler struct {
	characters *character.Service
	pages      map[string]*template.Template
}

// NewHandler parses every page template up front so a broken template fails
// at startup instead of on first request.
func NewHandler(characters *character.Service) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Handler{characters: characters, pages: pages}, nil
}

type basePage struct {
	Title    string
	CacheAge string
}

type housesPage struct {
	basePage
	Houses []house.House
}

type charactersPage struct {
	basePage
	Query   string
	Result  character.PageResult
	PrevURL string
	NextURL string
}

type errorPage struct {
	basePage
	Heading string
	Message string
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", basePage{Title: "Home", CacheAge: h.cacheAge()})
}

// Houses handles GET /houses
func (h *Handler) Houses(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "houses", housesPage{
		basePage: basePage{Title: "Houses", CacheAge: h.cacheAge()},
		Houses:   house.All(),
	})
}

// Characters handles GET /characters
func (h *Handler) Characters(w http.ResponseWriter, r *http.Request) {
	req := character.ParsePageRequest(r.URL.Query())

	res, err := h.characters.List(r.Context(), req)
	if err != nil {
		logger.FromContext(r.Context()).Error("render characters", logger.Error(err))
		status, msg := http.StatusInternalServerError, "Something went wrong while loading characters."
		if errors.Is(err, character.ErrRemoteFetch) {
			status, msg = http.StatusBadGateway, "The character archive is unreachable right now. Please try again shortly."
		}
		h.render(w, r, status, "error", errorPage{
			basePage: basePage{Title: "Unavailable", CacheAge: h.cacheAge()},
			Heading:  "Characters unavailable",
			Message:  msg,
		})
		return
	}

	page := charactersPage{
		basePage: basePage{Title: "Characters", CacheAge: h.cacheAge()},
		Query:    req.Query,
		Result:   res,
	}
	if res.HasPrevious {
		page.PrevURL = pageURL(req.Query, res.PreviousPage, res.PageSize)
	}
	if res.HasNext {
		page.NextURL = pageURL(req.Query, res.NextPage, res.PageSize)
	}
	h.render(w, r, http.StatusOK, "characters", page)
}

// NotFound renders the HTML 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error", errorPage{
		basePage: basePage{Title: "Not found"},
		Heading:  "Page not found",
		Message:  "This page has vanished like a Disillusioned wizard.",
	})
}

// pageURL links to another page of the same search; q is dropped when blank.
func pageURL(q string, page, pageSize int) string {
	v := url.Values{}
	if q = strings.TrimSpace(q); q != "" {
		v.Set("q", q)
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(pageSize))
	return "/characters?" + v.Encode()
}

func (h *Handler) cacheAge() string {
	st := h.characters.Status()
	if !st.Populated {
		return ""
	}
	return humanize.RelTime(st.FetchedAt, st.FetchedAt.Add(st.Age), "ago", "from now")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromContext(r.Context()).Error("execute template", logger.String("template", name), logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
