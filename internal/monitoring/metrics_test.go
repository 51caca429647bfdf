package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	mc := NewMetricsCollector("content-engine")

	r := chi.NewRouter()
	r.Use(mc.MetricsMiddleware)
	r.Get("/api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	count := testutil.ToFloat64(mc.httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/posts/{id}", "404"))
	assert.Equal(t, float64(2), count)
}

func TestHandler_ExposesDomainCounters(t *testing.T) {
	mc := NewMetricsCollector("content-engine")
	mc.PostGenerated("Twitter", "Casual")
	mc.PostsPublished(3)

	rec := httptest.NewRecorder()
	mc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `content_engine_posts_generated_total{platform="Twitter",tone="casual"} 1`)
	assert.Contains(t, string(body), "content_engine_posts_published_total 3")
}
