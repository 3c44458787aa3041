package inventory

import (
	"mgtboard/internal/domain/inventory"
)

type importInput struct {
	RawBody []byte `contentType:"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"`
}

type importOutput struct {
	Body *inventory.ImportResult
}

type listInput struct{}

type listOutput struct {
	Body []inventory.Box
}
