package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Middleware(t *testing.T) {
	m := New()

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "teapot",
		Method:      http.MethodGet,
		Path:        "/teapot",
		Middlewares: huma.Middlewares{m.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, huma.NewError(http.StatusTeapot, "short and stout")
	})

	api.Get("/teapot")
	api.Get("/teapot")

	body := scrape(t, m)
	assert.Contains(t, body, `mgtboard_http_requests_total{operation="teapot",status="418"} 2`)
	assert.Contains(t, body, `mgtboard_http_request_duration_seconds_count{operation="teapot"} 2`)
}

func TestMetrics_ForceUpdates(t *testing.T) {
	m := New()
	m.RecordForceUpdate("app")
	m.RecordForceUpdate("app")
	m.RecordForceUpdate("box")

	body := scrape(t, m)
	assert.Contains(t, body, `mgtboard_compatibility_force_updates_total{side="app"} 2`)
	assert.Contains(t, body, `mgtboard_compatibility_force_updates_total{side="box"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
