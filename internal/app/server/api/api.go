// GET  /status                                  # Состояние сервиса (публичный)
// GET  /metrics                                 # Prometheus (публичный)
// GET  /api/v1/packages                         # Список версий (публичный)
// GET  /api/v1/packages/box/latest              # Последняя версия бокса (публичный)
// GET  /api/v1/packages/check/{app,box}         # Проверка обновления (публичный)
// GET  /api/v1/packages/compatibility           # Совместимость app/box (публичный)
// POST|PUT|DELETE /api/v1/packages              # Управление версиями (admin)
// POST /api/v1/registry                         # Привязка клиента (admin)
// GET  /api/v1/registry/{box_uuid}/clients      # Клиенты бокса (admin)
// POST /api/v1/registry/{box_uuid}/migration    # Миграция бокса (admin)
// POST /api/v1/boxes/import                     # Импорт xlsx (admin)
// GET  /api/v1/boxes                            # Список боксов (admin)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"mgtboard/internal/app/server/api/http/health"
	inventoryAPI "mgtboard/internal/app/server/api/http/inventory"
	"mgtboard/internal/app/server/api/http/middleware"
	"mgtboard/internal/app/server/api/http/middleware/auth"
	"mgtboard/internal/app/server/api/http/middleware/logger"
	"mgtboard/internal/app/server/api/http/middleware/metrics"
	"mgtboard/internal/app/server/api/http/packages"
	registryAPI "mgtboard/internal/app/server/api/http/registry"
	"mgtboard/internal/app/server/config"
	"mgtboard/internal/domain/inventory"
	"mgtboard/internal/domain/pkg"
	"mgtboard/internal/domain/registry"
	"mgtboard/internal/infrastructure/storage"
)

type Handlers struct {
	Health    *health.Handler
	Packages  *packages.Handler
	Registry  *registryAPI.Handler
	Inventory *inventoryAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma.Register.
func New(repos *storage.Repositories, cfg *config.Config, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	hcfg := huma.DefaultConfig("MgtBoard API", cfg.Version)
	hcfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, hcfg)

	m := metrics.New()
	mux.Handle("/metrics", m.Handler())

	h := handlers(repos, cfg, m, log)
	h.Health.SetupRoutes(API)
	h.Packages.SetupRoutes(API)
	h.Registry.SetupRoutes(API)
	h.Inventory.SetupRoutes(API)

	return mux
}

func handlers(repos *storage.Repositories, cfg *config.Config, m *metrics.Metrics, log *slog.Logger) *Handlers {
	authMW := auth.New(cfg.Admin.TokenHash, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	public := func() huma.Middlewares {
		return middlewares.
			Add(loggerMW.Middleware()).
			Add(m.Middleware()).
			GetAllAndClear()
	}
	// auth после логгера и метрик: ответы 401 тоже логируются и считаются
	admin := func() huma.Middlewares {
		return middlewares.
			Add(loggerMW.Middleware()).
			Add(m.Middleware()).
			Add(authMW.Middleware()).
			GetAllAndClear()
	}

	healthHandler := health.NewHandler(cfg.Version, log, public())

	pkgService := pkg.NewService(repos.Packages, log)
	packagesHandler := packages.NewHandler(pkgService, m, log, public(), admin())

	registryService := registry.NewService(repos.Registry, log)
	registryHandler := registryAPI.NewHandler(registryService, log, admin())

	inventoryService := inventory.NewService(repos.Boxes, log)
	inventoryHandler := inventoryAPI.NewHandler(inventoryService, log, admin())

	return &Handlers{
		Health:    healthHandler,
		Packages:  packagesHandler,
		Registry:  registryHandler,
		Inventory: inventoryHandler,
	}
}
