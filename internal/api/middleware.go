package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lox/skylog/internal/metrics"
	"github.com/lox/skylog/internal/models"
)

type ctxKey int

const (
	accountKey ctxKey = iota
	tokenKey
)

// instrument logs each request and counts it by route template so that
// path IDs do not blow up label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(m.Code)).Inc()

		if route != "/health" && route != "/metrics" {
			s.logger.Infow("request",
				"method", r.Method, "path", r.URL.Path, "status", m.Code,
				"bytes", m.Written, "duration", m.Duration, "remote", r.RemoteAddr)
		}
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// requireAccount rejects requests without a valid session.
func (s *Server) requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		acc, err := s.auth.Authenticate(token)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, acc)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withOptionalAccount attaches the account when a valid token is present
// and otherwise serves the request anonymously.
func (s *Server) withOptionalAccount(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if acc, err := s.auth.Authenticate(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), accountKey, acc))
			}
		}
		next(w, r)
	}
}

func accountFrom(ctx context.Context) *models.Account {
	acc, _ := ctx.Value(accountKey).(*models.Account)
	return acc
}

type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error(v...)
}
