package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TemirB/merchant-orders-sync/internal/application/service"
	"github.com/TemirB/merchant-orders-sync/internal/observability"
)

// ServerTimingApp measures the whole request and reports it to
// Metrics.ObserveHTTP under the matched route pattern.
func ServerTimingApp(m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.Noop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			dur := float64(time.Since(start).Microseconds()) / 1000.0

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.ObserveHTTP(r.Method, route, ww.Status(), dur)
		})
	}
}

// CORS allows the dashboard origin and answers preflight requests.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeLookupHeaders reports where an order lookup was answered from as one
// Server-Timing header plus X-Source and per-stage X-*-Time headers. It must
// run before the body is written.
func writeLookupHeaders(w http.ResponseWriter, st service.LookupStats) {
	h := w.Header()
	var timing []string
	stages := []struct {
		name, header string
		ms           float64
	}{
		{name: "cache", header: "X-Cache-Time", ms: st.CacheMs},
		{name: "remote", header: "X-Remote-Time", ms: st.RemoteMs},
	}
	for _, s := range stages {
		if s.ms <= 0 {
			continue
		}
		timing = append(timing, fmt.Sprintf("%s;dur=%.2f", s.name, s.ms))
		h.Set(s.header, fmt.Sprintf("%.2f", s.ms))
	}
	if st.Source != "" {
		timing = append(timing, fmt.Sprintf("source;desc=%q", st.Source))
		h.Set("X-Source", string(st.Source))
	}
	if len(timing) > 0 {
		h.Set("Server-Timing", strings.Join(timing, ", "))
	}
}
