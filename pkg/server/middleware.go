package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphwalk/pkg/observability"
)

// instrument logs each request and reports it to the HTTP hooks, labeled by
// route pattern rather than raw path.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)

		fields := []any{
			"method", r.Method,
			"route", route,
			"status", status,
			"elapsed", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= 500 {
			s.logger.Error("request", fields...)
		} else {
			s.logger.Debug("request", fields...)
		}
	})
}
