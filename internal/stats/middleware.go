package stats

import (
	"net/http"
	"time"
)

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

// WriteHeader records code before passing it on.
func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests and server errors and observes latency.
func Middleware(c Collector, next http.Handler) http.Handler {
	c = OrNoop(c)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rec, r)

		c.IncCounter(MetricRequests, 1)
		if rec.Status >= http.StatusInternalServerError {
			c.IncCounter(MetricRequestErrors, 1)
		}
		c.ObserveHistogram(MetricRequestDuration, time.Since(start).Seconds())
	})
}
