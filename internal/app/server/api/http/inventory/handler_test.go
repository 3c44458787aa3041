package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/inventory"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Import(ctx context.Context, r io.Reader) (*inventory.ImportResult, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ImportResult), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]inventory.Box, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Box), args.Error(1)
}

const xlsx = "Content-Type: application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func setup(t *testing.T) (humatest.TestAPI, *MockService) {
	t.Helper()
	svc := new(MockService)
	_, api := humatest.New(t)
	NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), huma.Middlewares{}).SetupRoutes(api)
	return api, svc
}

func TestHandler_Import(t *testing.T) {
	payload := []byte("workbook")

	tests := []struct {
		name       string
		result     *inventory.ImportResult
		err        error
		wantStatus int
	}{
		{
			name:       "imported",
			result:     &inventory.ImportResult{Imported: 2, Failed: []inventory.RowError{{Row: 4, Error: "bad mac"}}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "broken workbook",
			err:        errors.Join(inventory.ErrInvalidWorkbook, errors.New("zip: not a valid zip file")),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := setup(t)
			if tt.err != nil {
				svc.On("Import", mock.Anything, payload).Return(nil, tt.err)
			} else {
				svc.On("Import", mock.Anything, payload).Return(tt.result, nil)
			}

			resp := api.Post("/api/v1/boxes/import", xlsx, bytes.NewReader(payload))

			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.result != nil {
				var got inventory.ImportResult
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
				assert.Equal(t, *tt.result, got)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Import_Empty(t *testing.T) {
	api, svc := setup(t)

	resp := api.Post("/api/v1/boxes/import", xlsx, bytes.NewReader(nil))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestHandler_List(t *testing.T) {
	api, svc := setup(t)
	svc.On("List", mock.Anything).Return([]inventory.Box{{MAC: "aa:bb:cc:dd:ee:ff", Number: "1"}}, nil)

	resp := api.Get("/api/v1/boxes")

	require.Equal(t, http.StatusOK, resp.Code)
	var got []inventory.Box
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", got[0].MAC)
}
