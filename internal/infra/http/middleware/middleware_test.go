package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub,
		"role": "authenticated",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(UserID(r.Context())))
}

func TestAuthAcceptsValidToken(t *testing.T) {
	h := Auth(secret)(http.HandlerFunc(echoUser))
	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims("user-1")))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	h := Auth(secret)(http.HandlerFunc(echoUser))
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims("user-2"))
	req := httptest.NewRequest(http.MethodGet, "/board/stream?access_token="+token, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "user-2", rec.Body.String())
}

func TestAuthRejects(t *testing.T) {
	expired := jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Minute).Unix()}

	cases := map[string]string{
		"sem header":      "",
		"sem bearer":      "Token abc",
		"assinatura ruim": "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("outro-segredo"), validClaims("u")),
		"expirado":        "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), expired),
		"sem sub":         "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
		"outro algoritmo": "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims("u")),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			h := Auth(secret)(http.HandlerFunc(echoUser))
			req := httptest.NewRequest(http.MethodGet, "/board", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "UNAUTHORIZED", body["error"])
		})
	}
}

func TestRecovererAnswers500(t *testing.T) {
	h := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(2)
	defer rl.Close()

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Close()

	rl.Allow("1.1.1.1")
	rl.evict(time.Now().Add(time.Hour))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Close()
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/webhook/leads", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("9.9.9.9:4000", ""))
	assert.Equal(t, http.StatusTooManyRequests, do("9.9.9.9:4001", ""))
	// trocar o X-Forwarded-For a cada chamada não gera um balde novo
	assert.Equal(t, http.StatusTooManyRequests, do("9.9.9.9:4002", "1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("9.9.9.9:4003", "2.2.2.2, 10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("7.7.7.7:4000", ""))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.10:51234"
	assert.Equal(t, "192.168.0.10", ClientIP(req))

	req.Header.Set("X-Real-IP", "8.8.8.8")
	req.Header.Set("X-Forwarded-For", "8.8.4.4")
	assert.Equal(t, "192.168.0.10", ClientIP(req))

	req.RemoteAddr = "192.168.0.11"
	assert.Equal(t, "192.168.0.11", ClientIP(req))
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/leads/{id}", "418")))
}

func TestRecordLeadTransitionCountsSales(t *testing.T) {
	before := testutil.ToFloat64(salesClosed)

	RecordLeadTransition(entity.StageNew, entity.StageInNegotiation)
	RecordLeadTransition(entity.StageInNegotiation, entity.StageClosed)

	assert.Equal(t, before+1, testutil.ToFloat64(salesClosed))
	assert.GreaterOrEqual(t, testutil.ToFloat64(leadTransitions.WithLabelValues("new", "in_negotiation")), 1.0)
}

func TestSetUrgencyGauge(t *testing.T) {
	SetUrgencyGauge(entity.UrgencyLate, 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(newLeadsByUrgency.WithLabelValues("late")))
}
