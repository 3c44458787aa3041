package inventory

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// maxWorkbookBytes ограничивает размер загружаемой книги.
const maxWorkbookBytes = 32 << 20

func (h *Handler) importOp() huma.Operation {
	return huma.Operation{
		OperationID:  "boxes-import",
		Method:       http.MethodPost,
		Path:         "/api/v1/boxes/import",
		Summary:      "Import factory box inventory from an xlsx workbook",
		Description:  "Rows are upserted by MAC address. Invalid rows are reported and skipped.",
		Tags:         []string{"inventory"},
		Security:     []map[string][]string{{"bearer": {}}},
		MaxBodyBytes: maxWorkbookBytes,
		Middlewares:  h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "boxes-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/boxes",
		Summary:     "List imported boxes",
		Tags:        []string{"inventory"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
