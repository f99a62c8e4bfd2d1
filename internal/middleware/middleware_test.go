package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ashirpar/clubserver/internal/metrics"
)

func newRouter(mw func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get("/news/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})
	return r
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rr := httptest.NewRecorder()
	newRouter(Logger(logger)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/news/abc", nil))

	out := buf.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "route=/news/{id}")
	assert.Contains(t, out, "bytes=2")
}

func TestMetrics(t *testing.T) {
	m := metrics.New()

	rr := httptest.NewRecorder()
	newRouter(Metrics(m)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/news/abc", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	n, err := testutil.GatherAndCount(m.Registry(), "clubserver_http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
