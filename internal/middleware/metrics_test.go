package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// Distinct IDs must collapse into one series for the route.
	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestDuration))
	assert.Equal(t, 3.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/products/{id}", "200")))
}

func TestMetricsFallsBackToRawPathOutsideRouter(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "204")))
}
