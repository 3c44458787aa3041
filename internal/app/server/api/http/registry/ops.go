package registry

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "registry-register",
		Method:      http.MethodPost,
		Path:        "/api/v1/registry",
		Summary:     "Bind a client to a box",
		Tags:        []string{"registry"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) clientsOp() huma.Operation {
	return huma.Operation{
		OperationID: "registry-clients",
		Method:      http.MethodGet,
		Path:        "/api/v1/registry/{box_uuid}/clients",
		Summary:     "List clients bound to a box",
		Tags:        []string{"registry"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) migrateOp() huma.Operation {
	return huma.Operation{
		OperationID: "registry-migrate",
		Method:      http.MethodPost,
		Path:        "/api/v1/registry/{box_uuid}/migration",
		Summary:     "Migrate users and clients onto a box",
		Description: "A missing network_client_id is generated.",
		Tags:        []string{"registry"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
