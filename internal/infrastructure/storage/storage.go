package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"mgtboard/internal/app/server/config"
	"mgtboard/internal/domain/inventory"
	"mgtboard/internal/domain/pkg"
	"mgtboard/internal/domain/registry"
	"mgtboard/internal/infrastructure/storage/postgres"
	"mgtboard/internal/infrastructure/storage/sqlite"
)

// Repositories хранилища одного бэкенда.
type Repositories struct {
	Packages pkg.Repository
	Registry registry.Repository
	Boxes    inventory.Repository

	close func() error
}

// New открывает бэкенд, выбранный в cfg.DB.Driver.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Repositories, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		pool := st.Pool()
		return &Repositories{
			Packages: postgres.NewPackageRepository(pool, log),
			Registry: postgres.NewRegistryRepository(pool, log),
			Boxes:    postgres.NewBoxRepository(pool, log),
			close:    st.Close,
		}, nil

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		db := st.DB()
		return &Repositories{
			Packages: sqlite.NewPackageRepository(db, log),
			Registry: sqlite.NewRegistryRepository(db, log),
			Boxes:    sqlite.NewBoxRepository(db, log),
			close:    st.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
}

func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}
