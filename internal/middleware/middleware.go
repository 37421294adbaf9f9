package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rgjamkhedkar/passport-token-google/internal/logger"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy"
	"github.com/rgjamkhedkar/passport-token-google/internal/utils"
	"go.uber.org/zap"
)

// Authenticate guards a handler with the given strategy. A successful
// attempt stores AuthInfo in the request context; a failed one is answered
// with 401 and a bearer challenge; an errored one with 500.
func Authenticate(s strategy.Strategy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := s.Authenticate(r.Context(), strategy.FromHTTP(r))
			switch result.Outcome {
			case strategy.OutcomeSuccess:
				next.ServeHTTP(w, r.WithContext(withAuthInfo(r.Context(), s, result)))
			case strategy.OutcomeFail:
				writeUnauthorized(w, failMessage(result.Info))
			default:
				logger.Error("Authentication attempt errored",
					zap.String("strategy", s.Name()),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Error(result.Err),
				)
				utils.WriteError(w, "server_error", "authentication could not be completed", http.StatusInternalServerError)
			}
		})
	}
}

// OptionalAuthenticate runs the strategy but lets failed and errored
// attempts through unauthenticated.
func OptionalAuthenticate(s strategy.Strategy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := s.Authenticate(r.Context(), strategy.FromHTTP(r))
			if result.Outcome != strategy.OutcomeSuccess {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withAuthInfo(r.Context(), s, result)))
		})
	}
}

// CORSWithOrigins allows cross-origin requests from the given origins. An
// empty list allows any origin.
func CORSWithOrigins(origins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed := "*"
			if len(origins) > 0 {
				allowed = ""
				origin := r.Header.Get("Origin")
				for _, o := range origins {
					if o == origin {
						allowed = origin
						break
					}
				}
			}

			if allowed != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Expose-Headers", "WWW-Authenticate, X-Request-ID")
			}

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withAuthInfo(ctx context.Context, s strategy.Strategy, result strategy.Result) context.Context {
	return context.WithValue(ctx, AuthContextKey, &AuthInfo{
		User:     result.User,
		Info:     result.Info,
		Strategy: s.Name(),
	})
}

// failMessage renders the failure info a strategy attached into a
// human-readable description.
func failMessage(info any) string {
	switch v := info.(type) {
	case nil:
		return "Authentication required"
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// writeUnauthorized writes a 401 with a bearer challenge
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer realm="token-gateway", error="invalid_token", error_description="%s"`, message))
	utils.WriteError(w, "invalid_token", message, http.StatusUnauthorized)
}
