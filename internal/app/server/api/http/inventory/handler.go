package inventory

import (
	"bytes"
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/inventory"
)

type Handler struct {
	service    inventory.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service inventory.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "inventory_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.importOp(), h.importBoxes)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) importBoxes(ctx context.Context, input *importInput) (*importOutput, error) {
	if len(input.RawBody) == 0 {
		return nil, huma.Error400BadRequest("empty workbook")
	}

	res, err := h.service.Import(ctx, bytes.NewReader(input.RawBody))
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidWorkbook) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("import failed", "error", err)
		return nil, huma.Error500InternalServerError("internal error")
	}

	h.log.Info("boxes imported", "imported", res.Imported, "skipped", res.Skipped, "failed", len(res.Failed))
	return &importOutput{Body: res}, nil
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	boxes, err := h.service.List(ctx)
	if err != nil {
		h.log.Error("list boxes failed", "error", err)
		return nil, huma.Error500InternalServerError("internal error")
	}
	if boxes == nil {
		boxes = []inventory.Box{}
	}
	return &listOutput{Body: boxes}, nil
}
