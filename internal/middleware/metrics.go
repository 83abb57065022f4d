package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// HTTPObserver es lo que necesita Metrics; lo implementa *metrics.Metrics.
type HTTPObserver interface {
	ObserveHTTP(route, method string, code int, seconds float64)
}

// Metrics registra cada request con el patrón de ruta de chi ("/medicines/{medicineID}"),
// no con el path crudo, para no explotar la cardinalidad.
func Metrics(obs HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if obs == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			obs.ObserveHTTP(route, r.Method, statusOf(ww), time.Since(start).Seconds())
		})
	}
}
