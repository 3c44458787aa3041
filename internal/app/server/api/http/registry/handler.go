package registry

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/registry"
)

type Handler struct {
	service    registry.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service registry.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "registry_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.clientsOp(), h.clients)
	huma.Register(api, h.migrateOp(), h.migrate)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*clientOutput, error) {
	c, err := h.service.Register(ctx, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &clientOutput{Body: c}, nil
}

func (h *Handler) clients(ctx context.Context, input *clientsInput) (*clientsOutput, error) {
	clients, err := h.service.Clients(ctx, input.BoxUUID)
	if err != nil {
		return nil, h.mapError(err)
	}
	if clients == nil {
		clients = []registry.Client{}
	}
	return &clientsOutput{Body: clients}, nil
}

func (h *Handler) migrate(ctx context.Context, input *migrateInput) (*migrateOutput, error) {
	res, err := h.service.Migrate(ctx, input.BoxUUID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &migrateOutput{Body: res}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, registry.ErrSubdomainTaken):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, registry.ErrInvalidRegistry), errors.Is(err, registry.ErrInvalidMigration):
		return huma.Error422UnprocessableEntity(err.Error())
	}

	h.log.Error("request failed", "error", err)
	return huma.Error500InternalServerError("internal error")
}
