package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ashirpar/clubserver/internal/metrics"
)

// Metrics records every request in m, labelled by chi route pattern.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(routePattern(r), r.Method,
				strconv.Itoa(wrapped.statusCode), time.Since(start).Seconds())
		})
	}
}
