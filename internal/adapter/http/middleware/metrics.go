package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/banka1/banking-service/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics records request latency per route pattern and status code.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := r.Pattern
			if path == "" {
				path = r.URL.Path
			}
			collector.ObserveHTTP(path, strconv.Itoa(recorder.status), time.Since(start))
		})
	}
}
