package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rgjamkhedkar/passport-token-google/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy answers every attempt with a fixed result
type stubStrategy struct {
	name   string
	result strategy.Result
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Authenticate(ctx context.Context, req *strategy.Request) strategy.Result {
	return s.result
}

func TestAuthenticateSuccessInjectsAuthInfo(t *testing.T) {
	stub := &stubStrategy{name: "stub", result: strategy.Success("user-1", "extra")}

	var got *AuthInfo
	handler := Authenticate(stub)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AuthFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.User)
	assert.Equal(t, "extra", got.Info)
	assert.Equal(t, "stub", got.Strategy)
}

func TestAuthenticateFailAnswers401(t *testing.T) {
	tests := []struct {
		name        string
		info        any
		wantMessage string
	}{
		{
			name:        "nil info gets the generic message",
			info:        nil,
			wantMessage: "Authentication required",
		},
		{
			name:        "string info is passed through",
			info:        "bad creds",
			wantMessage: "bad creds",
		},
		{
			name:        "error info is rendered",
			info:        errors.New("token expired"),
			wantMessage: "token expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubStrategy{name: "stub", result: strategy.Fail(tt.info)}
			nextCalled := false
			handler := Authenticate(stub)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
			assert.Contains(t, rec.Header().Get("WWW-Authenticate"), tt.wantMessage)
			assert.JSONEq(t,
				`{"error":"invalid_token","error_description":"`+tt.wantMessage+`"}`,
				rec.Body.String(),
			)
		})
	}
}

func TestAuthenticateErrorAnswers500(t *testing.T) {
	stub := &stubStrategy{name: "stub", result: strategy.Error(errors.New("provider unreachable"))}
	nextCalled := false
	handler := Authenticate(stub)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"error":"server_error","error_description":"authentication could not be completed"}`,
		rec.Body.String(),
	)
	// The cause stays server-side
	assert.NotContains(t, rec.Body.String(), "provider unreachable")
}

func TestOptionalAuthenticate(t *testing.T) {
	tests := []struct {
		name     string
		result   strategy.Result
		wantAuth bool
	}{
		{name: "success is stored", result: strategy.Success("user-1", nil), wantAuth: true},
		{name: "fail falls through", result: strategy.Fail("nope"), wantAuth: false},
		{name: "error falls through", result: strategy.Error(errors.New("boom")), wantAuth: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubStrategy{name: "stub", result: tt.result}

			var gotAuth bool
			handler := OptionalAuthenticate(stub)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, gotAuth = AuthFromContext(r.Context())
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantAuth, gotAuth)
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Run("assigns an ID when none is supplied", func(t *testing.T) {
		var gotID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = RequestIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, gotID)
		assert.Equal(t, gotID, rec.Header().Get(RequestIDHeader))
	})

	t.Run("honors a caller-supplied ID", func(t *testing.T) {
		var gotID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = RequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "caller-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "caller-id", gotID)
		assert.Equal(t, "caller-id", rec.Header().Get(RequestIDHeader))
	})
}

func TestCORSWithOrigins(t *testing.T) {
	t.Run("empty list allows any origin", func(t *testing.T) {
		handler := CORSWithOrigins(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		handler := CORSWithOrigins([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		handler := CORSWithOrigins([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is answered directly", func(t *testing.T) {
		nextCalled := false
		handler := CORSWithOrigins(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, nextCalled)
	})
}
