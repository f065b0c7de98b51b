package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
	"github.com/prodib01/BAYLOR-CDC/internal/logger"
)

// RequestLogger logs basic request details and latency.
func RequestLogger(next http.Handler, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewLogger("info")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestObserver receives one observation per routed request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// observeRequests reports each matched request under its route template so
// that ids do not explode label cardinality.
func observeRequests(obs RequestObserver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = strings.TrimSuffix(tpl, "/")
				}
			}
			obs.ObserveRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}

// Authenticator resolves a token key to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (domain.User, error)
}

type userKey struct{}

// UserFromContext returns the user authenticated for the request.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// requireToken rejects requests without a valid "Token <key>" or
// "Bearer <key>" Authorization header.
func (h *handler) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := tokenFromHeader(r.Header.Get("Authorization"))
		if err == nil {
			var user domain.User
			user, err = h.svc.Auth.Authenticate(r.Context(), key)
			if err == nil {
				next(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
				return
			}
		}
		h.writeError(w, err)
	}
}

func tokenFromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrNotAuthenticated
	}
	scheme, key, ok := strings.Cut(header, " ")
	if !ok {
		return "", domain.ErrInvalidToken
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", domain.ErrNotAuthenticated
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsRune(key, ' ') {
		return "", domain.ErrInvalidToken
	}
	return key, nil
}
