package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLogger_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	_, api := humatest.New(t)
	mw := New(log).Middleware()

	huma.Register(api, huma.Operation{
		OperationID: "ok-op",
		Method:      http.MethodGet,
		Path:        "/ok",
		Middlewares: huma.Middlewares{mw},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})
	huma.Register(api, huma.Operation{
		OperationID: "missing-op",
		Method:      http.MethodGet,
		Path:        "/missing",
		Middlewares: huma.Middlewares{mw},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, huma.Error404NotFound("nope")
	})

	api.Get("/ok")
	assert.Contains(t, buf.String(), `"path":"/ok"`)
	assert.Contains(t, buf.String(), `"operation":"ok-op"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)

	buf.Reset()
	resp := api.Get("/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
