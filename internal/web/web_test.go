package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hpportal/internal/character"
	"hpportal/internal/platform/hpapi"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *character.MockCharacterSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := character.NewMockCharacterSource(ctrl)
	h, err := NewHandler(character.NewService(source))
	require.NoError(t, err)
	return h, source
}

func wizards(n int) []character.Character {
	out := make([]character.Character, n)
	for i := range out {
		out[i] = character.Character{Name: fmt.Sprintf("Wizard %02d", i+1), House: "Hufflepuff"}
	}
	return out
}

func TestHandler_Home(t *testing.T) {
	h, source := newTestHandler(t)
	source.EXPECT().Status().Return(character.CacheStatus{})

	w := httptest.NewRecorder()
	h.Home(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Welcome to Hogwarts")
	assert.NotContains(t, w.Body.String(), "Refreshed")
}

func TestHandler_Houses(t *testing.T) {
	h, source := newTestHandler(t)
	source.EXPECT().Status().Return(character.CacheStatus{
		Populated: true,
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Age:       3 * time.Minute,
	})

	w := httptest.NewRecorder()
	h.Houses(w, httptest.NewRequest(http.MethodGet, "/houses", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, name := range []string{"Gryffindor", "Slytherin", "Hufflepuff", "Ravenclaw"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, "#740001")
	assert.Contains(t, body, "Refreshed 3 minutes ago")
}

func TestHandler_Characters(t *testing.T) {
	h, source := newTestHandler(t)
	source.EXPECT().Get(gomock.Any()).Return(wizards(25), nil)
	source.EXPECT().Status().Return(character.CacheStatus{}).AnyTimes()

	w := httptest.NewRecorder()
	h.Characters(w, httptest.NewRequest(http.MethodGet, "/characters?q=+Wizard+&page=2&page_size=10", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Found: 25")
	assert.Contains(t, body, "Wizard 11")
	assert.Contains(t, body, "Wizard 20")
	assert.NotContains(t, body, "Wizard 21")
	assert.Contains(t, body, `href="/characters?page=1&amp;page_size=10&amp;q=Wizard"`)
	assert.Contains(t, body, `href="/characters?page=3&amp;page_size=10&amp;q=Wizard"`)
	assert.Contains(t, body, "Page 2 of 3")
}

func TestHandler_Characters_NoMatch(t *testing.T) {
	h, source := newTestHandler(t)
	source.EXPECT().Get(gomock.Any()).Return(wizards(3), nil)
	source.EXPECT().Status().Return(character.CacheStatus{}).AnyTimes()

	w := httptest.NewRecorder()
	h.Characters(w, httptest.NewRequest(http.MethodGet, "/characters?q=ZZZ_NO_MATCH", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No characters match your search.")
	assert.NotContains(t, w.Body.String(), `rel="next"`)
	assert.NotContains(t, w.Body.String(), `rel="prev"`)
}

func TestHandler_Characters_UpstreamDown(t *testing.T) {
	h, source := newTestHandler(t)
	source.EXPECT().Get(gomock.Any()).Return(nil, &hpapi.RemoteFetchError{Err: errors.New("connection refused")})
	source.EXPECT().Status().Return(character.CacheStatus{}).AnyTimes()

	w := httptest.NewRecorder()
	h.Characters(w, httptest.NewRequest(http.MethodGet, "/characters", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Characters unavailable")
}

func TestHandler_Characters_EscapesQuery(t *testing.T) {
	h, source := newTestHandler(t)
	source.EXPECT().Get(gomock.Any()).Return(wizards(1), nil)
	source.EXPECT().Status().Return(character.CacheStatus{}).AnyTimes()

	w := httptest.NewRecorder()
	h.Characters(w, httptest.NewRequest(http.MethodGet, "/characters?q=%3Cscript%3E", nil))

	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/characters?page=2&page_size=20", pageURL("  ", 2, 20))
	assert.Equal(t, "/characters?page=1&page_size=5&q=ron+weasley", pageURL("ron weasley", 1, 5))
}
