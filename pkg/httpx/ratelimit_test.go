package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

func loginRequest(ip, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = ip + ":40000"
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConsoleProfiles(t *testing.T) {
	tests := []struct {
		name     string
		cfg      httpx.RateLimitConfig
		requests int
	}{
		{"strict", httpx.StrictLimit, 5},
		{"moderate", httpx.ModerateLimit, 20},
		{"lenient", httpx.LenientLimit, 100},
		{"public", httpx.PublicLimit, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.requests, tt.cfg.RequestsPerWindow)
			require.Equal(t, tt.requests, tt.cfg.Burst)
			require.Equal(t, time.Minute, tt.cfg.Window)
		})
	}
}

func TestProfileFromEnv(t *testing.T) {
	def := httpx.StrictLimit

	t.Run("unset keeps defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ProfileFromEnv("UNSET", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_E2E_REQUESTS", "500")
		t.Setenv("RATELIMIT_E2E_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_E2E_BURST", "50")

		got := httpx.ProfileFromEnv("E2E", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 500, Window: 30 * time.Second, Burst: 50}, got)
	})

	t.Run("non-positive values are ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_ZERO_REQUESTS", "0")
		t.Setenv("RATELIMIT_ZERO_BURST", "-3")
		t.Setenv("RATELIMIT_ZERO_WINDOW_SEC", "60")

		got := httpx.ProfileFromEnv("ZERO", def)
		require.Equal(t, def.RequestsPerWindow, got.RequestsPerWindow)
		require.Equal(t, def.Burst, got.Burst)
		require.Equal(t, time.Minute, got.Window)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		t.Setenv("RATELIMIT_BAD_REQUESTS", "lots")
		require.Equal(t, def, httpx.ProfileFromEnv("BAD", def))
	})
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"socket address", nil, "198.51.100.7"},
		{"first forwarded hop", map[string]string{"X-Forwarded-For": " 203.0.113.1 , 10.0.0.1"}, "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
		{"empty forwarded falls through", map[string]string{"X-Forwarded-For": " ", "X-Real-IP": "203.0.113.3"}, "203.0.113.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/livez", nil)
			req.RemoteAddr = "198.51.100.7:5555"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	email := httpx.JSONFieldKeyExtractor("email")

	t.Run("normalizes and restores the body", func(t *testing.T) {
		req := loginRequest("198.51.100.7", `{"email":" Owner@Acme.COM ","password":"hunter22hunter"}`)
		require.Equal(t, "owner@acme.com", email(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"email":" Owner@Acme.COM ","password":"hunter22hunter"}`, string(rest))
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"password":"x"}`},
		{"non-string field", `{"email":42}`},
		{"not json", `email=owner@acme.com`},
		{"oversized", `{"email":"a@x.com","pad":"` + strings.Repeat("x", 70<<10) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := loginRequest("198.51.100.7", tt.body)
			require.Empty(t, email(req))

			// The handler still sees the whole body
			rest, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			require.Equal(t, tt.body, string(rest))
		})
	}
}

func TestRateLimitByIPAndJSONField(t *testing.T) {
	h := httpx.RateLimitByIPAndJSONField(httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}, "email")(ok)

	attempt := func(ip, addr string) int {
		return serve(h, loginRequest(ip, `{"email":"`+addr+`","password":"wrong"}`)).Code
	}

	require.Equal(t, http.StatusOK, attempt("198.51.100.7", "owner@acme.com"))
	require.Equal(t, http.StatusOK, attempt("198.51.100.7", "OWNER@acme.com"))
	require.Equal(t, http.StatusTooManyRequests, attempt("198.51.100.7", "owner@acme.com"))

	// Other accounts from the same address and the same account elsewhere are separate buckets
	require.Equal(t, http.StatusOK, attempt("198.51.100.7", "bob@acme.com"))
	require.Equal(t, http.StatusOK, attempt("198.51.100.8", "owner@acme.com"))
}

func TestRateLimitByUser(t *testing.T) {
	keys, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "breachwatch-test"})
	require.NoError(t, err)

	h := httpx.Chain(ok,
		httpx.AuthnMiddleware(keys.Verifier),
		httpx.RateLimitByUser(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}),
	)

	call := func(sub string) int {
		issued, err := keys.Issue(sub, "sid", sub+"@acme.com", sub, []string{"pwd"}, time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		return serve(h, req).Code
	}

	require.Equal(t, http.StatusOK, call("alice"))
	require.Equal(t, http.StatusTooManyRequests, call("alice"))
	require.Equal(t, http.StatusOK, call("bob"))
}

func TestRateLimitRejection(t *testing.T) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(ok)

	require.Equal(t, http.StatusOK, serve(h, loginRequest("198.51.100.7", "{}")).Code)

	rec := serve(h, loginRequest("198.51.100.7", "{}"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
	require.JSONEq(t, `{"error":"too many requests, please try again later"}`, rec.Body.String())
}

func TestRateLimitFreshPerMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}

	first := httpx.RateLimitByIP(cfg)(ok)
	require.Equal(t, http.StatusOK, serve(first, loginRequest("198.51.100.7", "{}")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(first, loginRequest("198.51.100.7", "{}")).Code)

	second := httpx.RateLimitByIP(cfg)(ok)
	require.Equal(t, http.StatusOK, serve(second, loginRequest("198.51.100.7", "{}")).Code)
}

func TestRateLimitWithoutKey(t *testing.T) {
	h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
		func(*http.Request) string { return "" })(ok)

	for range 3 {
		require.Equal(t, http.StatusOK, serve(h, loginRequest("198.51.100.7", "{}")).Code)
	}
}
