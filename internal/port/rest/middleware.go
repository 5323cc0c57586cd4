package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
)

const SessionHeader = "X-Session-ID"

// SessionCart opens the caller's cart store and places it in the request
// context for the handlers behind it.
func SessionCart(registry *service.CartRegistry, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, err := registry.Store(r.Context(), r.Header.Get(SessionHeader))
			if err != nil {
				log.Errorf("Failed to open cart store: %v", err)
				respondWithError(w, http.StatusServiceUnavailable, "cart storage unavailable")
				return
			}
			next.ServeHTTP(w, r.WithContext(service.WithCartStore(r.Context(), store)))
		})
	}
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Infof("%s %s -> %d (%d bytes) in %s request_id=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}

// Instrument records latency and error counts by route pattern and wraps the
// request in a span.
func Instrument(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Tracer("storefront/http").Start(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.Method + " " + routePattern(r)
			status := ww.Status()
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			if m == nil {
				return
			}
			m.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
			if status >= http.StatusBadRequest {
				m.APIErrorsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
