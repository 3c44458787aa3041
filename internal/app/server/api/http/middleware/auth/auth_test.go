package auth

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

func testAuth(t *testing.T, token string) *Auth {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if token == "" {
		return New("", log)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	require.NoError(t, err)
	return New(string(hash), log)
}

func TestAuth_Verify(t *testing.T) {
	a := testAuth(t, "s3cret")

	assert.True(t, a.Verify("s3cret"))
	assert.False(t, a.Verify("wrong"))
	assert.False(t, a.Verify(""))

	disabled := testAuth(t, "")
	assert.False(t, disabled.Verify("s3cret"))
}

func TestAuth_Middleware(t *testing.T) {
	a := testAuth(t, "s3cret")

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "admin-op",
		Method:      http.MethodGet,
		Path:        "/admin",
		Middlewares: huma.Middlewares{a.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*struct{ Body string }, error) {
		return &struct{ Body string }{Body: "ok"}, nil
	})

	tests := []struct {
		name       string
		header     []any
		wantStatus int
	}{
		{name: "valid token", header: []any{"Authorization: Bearer s3cret"}, wantStatus: http.StatusOK},
		{name: "wrong token", header: []any{"Authorization: Bearer nope"}, wantStatus: http.StatusUnauthorized},
		{name: "no bearer prefix", header: []any{"Authorization: s3cret"}, wantStatus: http.StatusUnauthorized},
		{name: "no header", header: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get("/admin", tt.header...)
			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, resp.Body.String())
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	hash, err := HashToken("token")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("token")))
}
