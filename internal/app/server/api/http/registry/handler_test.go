package registry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/registry"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, info registry.RegistryInfo) (*registry.Client, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Client), args.Error(1)
}

func (m *MockService) Clients(ctx context.Context, boxUUID string) ([]registry.Client, error) {
	args := m.Called(ctx, boxUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.Client), args.Error(1)
}

func (m *MockService) Migrate(ctx context.Context, boxUUID string, info registry.BoxMigrationInfo) (*registry.BoxMigrationResult, error) {
	args := m.Called(ctx, boxUUID, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.BoxMigrationResult), args.Error(1)
}

func setup(t *testing.T) (humatest.TestAPI, *MockService) {
	t.Helper()
	svc := new(MockService)
	_, api := humatest.New(t)
	NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), huma.Middlewares{}).SetupRoutes(api)
	return api, svc
}

func TestHandler_Register(t *testing.T) {
	info := registry.RegistryInfo{BoxUUID: "box-1", ClientUUID: "c1", Subdomain: "alice"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "registered", wantStatus: http.StatusOK},
		{name: "taken", err: &registry.DomainError{Err: registry.ErrSubdomainTaken}, wantStatus: http.StatusConflict},
		{name: "invalid", err: &registry.DomainError{Err: registry.ErrInvalidRegistry}, wantStatus: http.StatusUnprocessableEntity},
		{name: "store failure", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := setup(t)
			if tt.err != nil {
				svc.On("Register", mock.Anything, info).Return(nil, tt.err)
			} else {
				svc.On("Register", mock.Anything, info).Return(&registry.Client{BoxUUID: "box-1", ClientUUID: "c1", Subdomain: "alice"}, nil)
			}

			resp := api.Post("/api/v1/registry", map[string]any{
				"box_uuid":    "box-1",
				"client_uuid": "c1",
				"subdomain":   "alice",
			})

			assert.Equal(t, tt.wantStatus, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Clients(t *testing.T) {
	api, svc := setup(t)
	svc.On("Clients", mock.Anything, "box-1").Return(nil, nil)

	resp := api.Get("/api/v1/registry/box-1/clients")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestHandler_Migrate(t *testing.T) {
	api, svc := setup(t)

	info := registry.BoxMigrationInfo{
		UserInfos: []registry.UserMigrationInfo{{
			UserID:      "u1",
			UserDomain:  "alice.space.io",
			UserType:    "admin",
			ClientInfos: []registry.ClientMigrationInfo{{ClientUUID: "c1", ClientType: "ios"}},
		}},
	}
	svc.On("Migrate", mock.Anything, "box-1", info).Return(&registry.BoxMigrationResult{
		BoxUUID:         "box-1",
		NetworkClientID: "net-1",
		UserInfos:       info.UserInfos,
	}, nil)

	resp := api.Post("/api/v1/registry/box-1/migration", map[string]any{
		"user_infos": []map[string]any{{
			"user_id":      "u1",
			"user_domain":  "alice.space.io",
			"user_type":    "admin",
			"client_infos": []map[string]any{{"client_uuid": "c1", "client_type": "ios"}},
		}},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"network_client_id":"net-1"`)
	svc.AssertExpectations(t)
}

func TestHandler_Migrate_EmptyUsers(t *testing.T) {
	api, svc := setup(t)

	resp := api.Post("/api/v1/registry/box-1/migration", map[string]any{
		"user_infos": []map[string]any{},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Migrate", mock.Anything, mock.Anything, mock.Anything)
}
