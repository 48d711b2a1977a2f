package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hpportal/internal/platform/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSecurityHeadersMiddleware_HeadersSet(t *testing.T) {
	handler := SecurityHeadersMiddleware(false)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	expectedHeaders := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Content-Security-Policy": contentSecurityPolicy,
	}
	for header, expected := range expectedHeaders {
		if got := w.Header().Get(header); got != expected {
			t.Errorf("Expected %s header to be %s, got %s", header, expected, got)
		}
	}
	if hsts := w.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("Expected no HSTS header when disabled, got %s", hsts)
	}
}

func TestSecurityHeadersMiddleware_HSTSEnabled(t *testing.T) {
	handler := SecurityHeadersMiddleware(true)(okHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if hsts := w.Header().Get("Strict-Transport-Security"); hsts != "max-age=31536000; includeSubDomains" {
		t.Errorf("Expected HSTS header with correct value, got %s", hsts)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen == "" {
			t.Fatal("Expected a generated request id")
		}
		if w.Header().Get(requestIDHeader) != seen {
			t.Errorf("Expected response header %q, got %q", seen, w.Header().Get(requestIDHeader))
		}
	})

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if seen != "abc-123" {
			t.Errorf("Expected abc-123, got %q", seen)
		}
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if len(seen) > maxRequestIDLen {
			t.Errorf("Expected oversized id to be replaced, got %d chars", len(seen))
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}), RequestIDMiddleware, AccessLogMiddleware(logger.NewNop()), RecoveryMiddleware)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("Expected INTERNAL_ERROR body, got %s", w.Body.String())
	}
}

func TestRecoveryMiddleware_HeaderAlreadyWritten(t *testing.T) {
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}), AccessLogMiddleware(logger.NewNop()), RecoveryMiddleware)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusAccepted {
		t.Errorf("Expected original status to be kept, got %d", w.Code)
	}
}

func TestMethodsMiddleware(t *testing.T) {
	handler := MethodsMiddleware(http.MethodGet, http.MethodHead)(okHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for GET, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for POST, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Expected Allow header, got %q", allow)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 2)
	handler := rl.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 200 429], got %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected a separate bucket per client, got %d", w.Code)
	}
}

func TestClientKey_IgnoresForwardedForWithoutTrustedProxy(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := rl.clientKey(req); got != "192.0.2.1" {
		t.Errorf("Expected host only, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := rl.clientKey(req); got != "192.0.2.1" {
		t.Errorf("Expected forwarded header to be ignored, got %q", got)
	}
}

func TestClientKey_TrustedProxy(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.10"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	rl := NewRateLimitMiddleware(1, 1, trusted...)

	tests := []struct {
		name   string
		remote string
		xff    []string
		want   string
	}{
		{name: "no header", remote: "10.1.2.3:80", want: "10.1.2.3"},
		{name: "single hop", remote: "10.1.2.3:80", xff: []string{"203.0.113.7"}, want: "203.0.113.7"},
		{name: "spoofed left hop ignored", remote: "10.1.2.3:80", xff: []string{"198.51.100.1, 203.0.113.7"}, want: "203.0.113.7"},
		{name: "trusted hops skipped", remote: "192.0.2.10:80", xff: []string{"203.0.113.7, 10.0.0.5"}, want: "203.0.113.7"},
		{name: "repeated headers", remote: "10.1.2.3:80", xff: []string{"198.51.100.1", "203.0.113.9"}, want: "203.0.113.9"},
		{name: "all trusted", remote: "10.1.2.3:80", xff: []string{"10.0.0.7"}, want: "10.0.0.7"},
		{name: "untrusted peer", remote: "198.51.100.4:80", xff: []string{"203.0.113.7"}, want: "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			if got := rl.clientKey(req); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRateLimitMiddleware_SpoofedForwardedForSharesBucket(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 1)
	handler := rl.Middleware(okHandler)

	codes := make([]int, 0, 2)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.4:5555"
		req.Header.Set("X-Forwarded-For", spoofed)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 429], got %v", codes)
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{" 10.0.0.0/8 ", "", "::ffff:192.0.2.1", "2001:db8::/32"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10.0.0.0/8", "192.0.2.1/32", "2001:db8::/32"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d prefixes, got %v", len(want), got)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("prefix %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if _, err := ParseTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Error("Expected error for invalid address")
	}
}
