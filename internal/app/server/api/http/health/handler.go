package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const statusOK = "ok"

type Handler struct {
	version    string
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(version string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		version:    version,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statusOp(), h.status)
}

func (h *Handler) status(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("status request received")

	return &Output{
		Body: Response{
			Status:  statusOK,
			Version: h.version,
		},
	}, nil
}
