package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mgtboard/internal/app/server/config"
	"mgtboard/internal/domain/pkg"
)

func TestNew_SQLite(t *testing.T) {
	cfg := &config.Config{DB: config.Database{
		Driver:      config.DriverSQLite,
		DatabaseURI: filepath.Join(t.TempDir(), "board.db"),
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	repos, err := New(context.Background(), cfg, log)
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.Packages.Create(ctx, &pkg.Package{Name: "spacebox", Type: pkg.TypeBox, Version: "1.0"}))

	latest, err := repos.Packages.FindLatest(ctx, "spacebox", pkg.TypeBox)
	require.NoError(t, err)
	assert.Equal(t, "1.0", latest.Version)

	boxes, err := repos.Boxes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DB: config.Database{Driver: "mysql", DatabaseURI: "x"}}

	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestRepositories_CloseWithoutBackend(t *testing.T) {
	assert.NoError(t, (&Repositories{}).Close())
}
