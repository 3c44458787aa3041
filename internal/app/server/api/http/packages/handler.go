package packages

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/pkg"
)

// ForceUpdateRecorder получает решения о принудительном обновлении, например для метрик.
type ForceUpdateRecorder interface {
	RecordForceUpdate(side string)
}

type Handler struct {
	service  pkg.Servicer
	recorder ForceUpdateRecorder
	log      *slog.Logger
	public   huma.Middlewares
	admin    huma.Middlewares
}

func NewHandler(service pkg.Servicer, recorder ForceUpdateRecorder, log *slog.Logger, public, admin huma.Middlewares) *Handler {
	return &Handler{
		service:  service,
		recorder: recorder,
		log:      log.With("component", "packages_handler"),
		public:   public,
		admin:    admin,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.latestBoxOp(), h.latestBox)
	huma.Register(api, h.checkAppOp(), h.checkApp)
	huma.Register(api, h.checkBoxOp(), h.checkBox)
	huma.Register(api, h.compatibilityOp(), h.compatibility)
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*packageOutput, error) {
	p, err := h.service.Save(ctx, input.Body.toDomain())
	if err != nil {
		return nil, h.mapError(err)
	}
	return &packageOutput{Body: p}, nil
}

func (h *Handler) update(ctx context.Context, input *saveInput) (*packageOutput, error) {
	p, err := h.service.Update(ctx, input.Body.toDomain())
	if err != nil {
		return nil, h.mapError(err)
	}
	return &packageOutput{Body: p}, nil
}

func (h *Handler) delete(ctx context.Context, input *identityInput) (*deleteOutput, error) {
	id := pkg.Identity{Name: input.Name, Type: input.Type, Version: input.Version}
	if err := h.service.Delete(ctx, id); err != nil {
		return nil, h.mapError(err)
	}
	return &deleteOutput{Body: deleteResponse{Status: "ok"}}, nil
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	pkgs, err := h.service.List(ctx, input.Name, input.Type)
	if err != nil {
		return nil, h.mapError(err)
	}
	if pkgs == nil {
		pkgs = []pkg.Package{}
	}
	return &listOutput{Body: pkgs}, nil
}

func (h *Handler) latestBox(ctx context.Context, input *latestBoxInput) (*packageOutput, error) {
	p, err := h.service.LatestBox(ctx, input.BoxName, input.BoxType)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &packageOutput{Body: p}, nil
}

func (h *Handler) checkApp(ctx context.Context, input *checkInput) (*checkOutput, error) {
	res, err := h.service.CheckApp(ctx, input.query())
	if err != nil {
		return nil, h.mapError(err)
	}
	return &checkOutput{Body: res}, nil
}

func (h *Handler) checkBox(ctx context.Context, input *checkInput) (*checkOutput, error) {
	res, err := h.service.CheckBox(ctx, input.query())
	if err != nil {
		return nil, h.mapError(err)
	}
	return &checkOutput{Body: res}, nil
}

func (h *Handler) compatibility(ctx context.Context, input *checkInput) (*compatibilityOutput, error) {
	res, err := h.service.CheckCompatibility(ctx, input.query())
	if err != nil {
		return nil, h.mapError(err)
	}

	if h.recorder != nil {
		if res.IsAppForceUpdate {
			h.recorder.RecordForceUpdate("app")
		}
		if res.IsBoxForceUpdate {
			h.recorder.RecordForceUpdate("box")
		}
	}
	return &compatibilityOutput{Body: res}, nil
}

func (h *Handler) mapError(err error) error {
	msg := err.Error()
	if code := pkg.ErrorCode(err); code != "" {
		msg = fmt.Sprintf("%s: %s", code, msg)
	}

	switch {
	case errors.Is(err, pkg.ErrDuplicateVersion):
		return huma.Error409Conflict(msg)
	case errors.Is(err, pkg.ErrVersionNotFound):
		return huma.Error404NotFound(msg)
	case errors.Is(err, pkg.ErrUnsupportedPlatform), errors.Is(err, pkg.ErrInvalidPackage):
		return huma.Error422UnprocessableEntity(msg)
	case errors.Is(err, pkg.ErrLatestVersionInconsistent):
		h.log.Error("inconsistent package data", "error", err)
		return huma.Error500InternalServerError(msg)
	}

	h.log.Error("request failed", "error", err)
	return huma.Error500InternalServerError("internal error")
}
