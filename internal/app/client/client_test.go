package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"mgtboard/internal/app/client/config"
	"mgtboard/internal/app/server/api"
	serverconfig "mgtboard/internal/app/server/config"
	"mgtboard/internal/domain/pkg"
	"mgtboard/internal/infrastructure/storage"
)

const adminToken = "s3cret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBoard поднимает настоящий сервер поверх временной sqlite базы.
func newBoard(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &serverconfig.Config{
		Env:     serverconfig.EnvLocal,
		Version: "2.1.0",
		DB: serverconfig.Database{
			Driver:      serverconfig.DriverSQLite,
			DatabaseURI: filepath.Join(t.TempDir(), "board.db"),
		},
		Admin: serverconfig.Admin{TokenHash: string(hash)},
	}

	repos, err := storage.New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	srv := httptest.NewServer(api.New(repos, cfg, discardLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server, token string) *Client {
	return New(&config.Config{
		ServerAddress: strings.TrimPrefix(srv.URL, "http://"),
		Token:         token,
		Timeout:       5 * time.Second,
	}, discardLogger())
}

func TestClient_Status(t *testing.T) {
	c := newClient(newBoard(t), "")

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", st.Status)
	assert.Equal(t, "2.1.0", st.Version)
}

func TestClient_PackageLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClient(newBoard(t), adminToken)

	box := pkg.Package{Name: "spacebox", Type: pkg.TypeBox, Version: "1.0", MinAndroidVersion: "1.0"}
	saved, err := c.Publish(ctx, box)
	require.NoError(t, err)
	assert.Equal(t, "1.0", saved.Version)

	_, err = c.Publish(ctx, box)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), pkg.CodeVersionExisted)

	box.UpdateDesc = "fixes"
	updated, err := c.Update(ctx, box)
	require.NoError(t, err)
	assert.Equal(t, "fixes", updated.UpdateDesc)

	_, err = c.Publish(ctx, pkg.Package{Name: "spacebox", Type: pkg.TypeBox, Version: "1.1"})
	require.NoError(t, err)

	latest, err := c.LatestBox(ctx, "spacebox", pkg.TypeBox)
	require.NoError(t, err)
	assert.Equal(t, "1.1", latest.Version)

	list, err := c.List(ctx, "spacebox", pkg.TypeBox)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1.1", list[0].Version)

	require.NoError(t, c.Delete(ctx, pkg.Identity{Name: "spacebox", Type: pkg.TypeBox, Version: "1.1"}))
	latest, err = c.LatestBox(ctx, "spacebox", pkg.TypeBox)
	require.NoError(t, err)
	assert.Equal(t, "1.0", latest.Version)
}

func TestClient_CheckCompatibility(t *testing.T) {
	ctx := context.Background()
	c := newClient(newBoard(t), adminToken)

	for _, p := range []pkg.Package{
		{Name: "space", Type: pkg.TypeAndroid, Version: "1.0"},
		{Name: "space", Type: pkg.TypeAndroid, Version: "2.0"},
		{Name: "spacebox", Type: pkg.TypeBox, Version: "1.0"},
		{Name: "spacebox", Type: pkg.TypeBox, Version: "2.0", MinAndroidVersion: "1.5"},
	} {
		_, err := c.Publish(ctx, p)
		require.NoError(t, err)
	}

	q := pkg.CheckQuery{
		AppName: "space", AppType: pkg.TypeAndroid, AppVersion: "1.0",
		BoxName: "spacebox", BoxType: pkg.TypeBox, BoxVersion: "2.0",
	}

	res, err := c.CheckCompatibility(ctx, q)
	require.NoError(t, err)
	assert.True(t, res.IsAppForceUpdate)
	assert.False(t, res.IsBoxForceUpdate)
	require.NotNil(t, res.LatestAppPkg)
	assert.Equal(t, "2.0", res.LatestAppPkg.Version)

	check, err := c.CheckApp(ctx, q)
	require.NoError(t, err)
	assert.True(t, check.NewVersionExist)
	assert.False(t, check.IsBoxNeedUpdate)

	q.AppVersion = "9.9"
	_, err = c.CheckCompatibility(ctx, q)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Unauthorized(t *testing.T) {
	c := newClient(newBoard(t), "wrong")

	_, err := c.Publish(context.Background(), pkg.Package{Name: "space", Type: pkg.TypeIOS, Version: "1.0"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Unauthorized")

	_, err = c.RegistryClients(context.Background(), "box-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ImportBoxes_BadWorkbook(t *testing.T) {
	c := newClient(newBoard(t), adminToken)

	_, err := c.ImportBoxes(context.Background(), strings.NewReader("not a zip"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "problem", body: `{"title":"Not Found","status":404,"detail":"PKG_VERSION_NOT_EXIST: gone"}`, want: "PKG_VERSION_NOT_EXIST: gone"},
		{name: "auth", body: `{"error":"Unauthorized"}`, want: "Unauthorized"},
		{
			name: "validation",
			body: `{"detail":"validation failed","errors":[{"message":"expected required property","location":"query.pkg_name"}]}`,
			want: "validation failed; query.pkg_name: expected required property",
		},
		{name: "not json", body: `oops`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
