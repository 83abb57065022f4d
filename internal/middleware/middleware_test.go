package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicine-cabinet/internal/platform/logger"
	"medicine-cabinet/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	want   string
	claims auth.Claims
}

func (s stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != s.want {
		return auth.Claims{}, errors.New("bad token")
	}
	return s.claims, nil
}

func claimsProbe(t *testing.T, wantOK bool, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		assert.Equal(t, wantOK, ok)
		assert.Equal(t, wantUser, c.UserID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthContext_DevMode(t *testing.T) {
	h := AuthContext(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugHouseholdHeader, " house-1 ")
	h(claimsProbe(t, true, "house-1")).ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	h(claimsProbe(t, false, "")).ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthContext_Verifier(t *testing.T) {
	h := AuthContext(stubVerifier{want: "good", claims: auth.Claims{UserID: "house-9"}}, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	h(claimsProbe(t, true, "house-9")).ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	h(claimsProbe(t, false, "")).ServeHTTP(httptest.NewRecorder(), req)

	// con verifier, el header de debug se ignora
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugHouseholdHeader, "house-1")
	h(claimsProbe(t, false, "")).ServeHTTP(httptest.NewRecorder(), req)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("BEARER  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}

func TestRecover(t *testing.T) {
	h := Recover(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RateLimit(0.001, 2, logger.Discard())(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// desactivado
	off := RateLimit(0, 0, logger.Discard())(ok)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

type recordingObserver struct {
	route  string
	method string
	code   int
}

func (o *recordingObserver) ObserveHTTP(route, method string, code int, seconds float64) {
	o.route, o.method, o.code = route, method, code
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{}

	r := chi.NewRouter()
	r.Use(Metrics(obs))
	r.Get("/medicines/{medicineID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/medicines/abc-123", nil))

	assert.Equal(t, "/medicines/{medicineID}", obs.route)
	assert.Equal(t, http.MethodGet, obs.method)
	assert.Equal(t, http.StatusTeapot, obs.code)
}

func TestMetrics_CountsRecoveredPanics(t *testing.T) {
	obs := &recordingObserver{}

	r := chi.NewRouter()
	r.Use(Metrics(obs))
	r.Use(Recover(logger.Discard()))
	r.Get("/reminders/{reminderID}", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/r1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "/reminders/{reminderID}", obs.route)
	assert.Equal(t, http.StatusInternalServerError, obs.code)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := RequestLogger(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
