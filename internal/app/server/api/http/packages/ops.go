package packages

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var adminSecurity = []map[string][]string{{"bearer": {}}}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID:   "packages-save",
		Method:        http.MethodPost,
		Path:          "/api/v1/packages",
		Summary:       "Publish a package version",
		Tags:          []string{"packages"},
		DefaultStatus: http.StatusCreated,
		Security:      adminSecurity,
		Middlewares:   h.admin,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/packages",
		Summary:     "Update a package version",
		Tags:        []string{"packages"},
		Security:    adminSecurity,
		Middlewares: h.admin,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/packages",
		Summary:     "Delete a package version",
		Description: "Deleting an unknown version is not an error.",
		Tags:        []string{"packages"},
		Security:    adminSecurity,
		Middlewares: h.admin,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/packages",
		Summary:     "List versions of a package, newest first",
		Tags:        []string{"packages"},
		Middlewares: h.public,
	}
}

func (h *Handler) latestBoxOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-latest-box",
		Method:      http.MethodGet,
		Path:        "/api/v1/packages/box/latest",
		Summary:     "Latest box firmware",
		Tags:        []string{"packages"},
		Middlewares: h.public,
	}
}

func (h *Handler) checkAppOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-check-app",
		Method:      http.MethodGet,
		Path:        "/api/v1/packages/check/app",
		Summary:     "Check for a newer app",
		Description: "Reports a newer app version and whether it requires a box upgrade. An unknown current app gives an empty result.",
		Tags:        []string{"compatibility"},
		Middlewares: h.public,
	}
}

func (h *Handler) checkBoxOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-check-box",
		Method:      http.MethodGet,
		Path:        "/api/v1/packages/check/box",
		Summary:     "Check for newer box firmware",
		Description: "Reports a newer box version and whether it requires an app upgrade. An unknown current box gives an empty result.",
		Tags:        []string{"compatibility"},
		Middlewares: h.public,
	}
}

func (h *Handler) compatibilityOp() huma.Operation {
	return huma.Operation{
		OperationID: "packages-compatibility",
		Method:      http.MethodGet,
		Path:        "/api/v1/packages/compatibility",
		Summary:     "Resolve force updates for an app and box pair",
		Tags:        []string{"compatibility"},
		Middlewares: h.public,
	}
}
