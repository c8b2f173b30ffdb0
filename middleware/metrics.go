package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/birdquest/birdquest/metrics"
)

// Metrics records request counts and latency per method, path and status.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		metrics.ObserveRequest(
			r.Method,
			r.URL.Path,
			strconv.Itoa(ww.Status()),
			time.Since(start).Seconds(),
		)
	})
}
