package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, info RegistryInfo) (*Client, error)
	Clients(ctx context.Context, boxUUID string) ([]Client, error)
	Migrate(ctx context.Context, boxUUID string, info BoxMigrationInfo) (*BoxMigrationResult, error)
}

type Service struct {
	repo  Repository
	log   *slog.Logger
	newID func() string
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log.With("component", "registry_service"),
		newID: uuid.NewString,
	}
}

// Register binds a client to a box.
func (s *Service) Register(ctx context.Context, info RegistryInfo) (*Client, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureSubdomainFree(ctx, info.Subdomain, info.BoxUUID); err != nil {
		return nil, err
	}

	c := &Client{
		BoxUUID:    info.BoxUUID,
		ClientUUID: info.ClientUUID,
		Subdomain:  info.Subdomain,
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		if errors.Is(err, ErrSubdomainTaken) {
			return nil, s.takenError(info.Subdomain, info.BoxUUID)
		}
		s.log.Error("failed to register client", "box_uuid", info.BoxUUID, "error", err)
		return nil, fmt.Errorf("register client: %w", err)
	}

	s.log.Info("client registered", "box_uuid", c.BoxUUID, "client_uuid", c.ClientUUID, "subdomain", c.Subdomain)
	return c, nil
}

func (s *Service) Clients(ctx context.Context, boxUUID string) ([]Client, error) {
	clients, err := s.repo.Clients(ctx, boxUUID)
	if err != nil {
		return nil, fmt.Errorf("list clients of %s: %w", boxUUID, err)
	}
	return clients, nil
}

// Migrate moves every user client listed in info onto the box.
func (s *Service) Migrate(ctx context.Context, boxUUID string, info BoxMigrationInfo) (*BoxMigrationResult, error) {
	if boxUUID == "" {
		return nil, invalid(ErrInvalidMigration, "box_uuid is required")
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	networkID := info.NetworkClientID
	if networkID == "" {
		networkID = s.newID()
		s.log.Debug("generated network client id", "box_uuid", boxUUID, "network_client_id", networkID)
	}

	var clients []Client
	seen := make(map[string]struct{})
	for _, u := range info.UserInfos {
		sub := userSubdomain(u.UserDomain)
		if _, ok := seen[sub]; !ok {
			if err := s.ensureSubdomainFree(ctx, sub, boxUUID); err != nil {
				return nil, err
			}
			seen[sub] = struct{}{}
		}
		for _, ci := range u.ClientInfos {
			clients = append(clients, Client{
				BoxUUID:    boxUUID,
				ClientUUID: ci.ClientUUID,
				Subdomain:  sub,
				ClientType: ci.ClientType,
				UserID:     u.UserID,
			})
		}
	}

	if err := s.repo.SaveMigration(ctx, boxUUID, networkID, clients); err != nil {
		if errors.Is(err, ErrSubdomainTaken) {
			return nil, s.takenError("", boxUUID)
		}
		s.log.Error("failed to migrate box", "box_uuid", boxUUID, "error", err)
		return nil, fmt.Errorf("migrate box %s: %w", boxUUID, err)
	}

	s.log.Info("box migrated", "box_uuid", boxUUID, "users", len(info.UserInfos), "clients", len(clients))

	return &BoxMigrationResult{
		BoxUUID:         boxUUID,
		NetworkClientID: networkID,
		UserInfos:       info.UserInfos,
	}, nil
}

func (s *Service) ensureSubdomainFree(ctx context.Context, subdomain, boxUUID string) error {
	owner, err := s.repo.SubdomainOwner(ctx, subdomain)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("lookup subdomain %s: %w", subdomain, err)
	case owner != boxUUID:
		return s.takenError(subdomain, boxUUID)
	}
	return nil
}

func (s *Service) takenError(subdomain, boxUUID string) *DomainError {
	s.log.Warn("subdomain already taken", "subdomain", subdomain, "box_uuid", boxUUID)
	msg := "subdomain is already taken"
	if subdomain != "" {
		msg = fmt.Sprintf("subdomain %q is already taken", subdomain)
	}
	return &DomainError{Err: ErrSubdomainTaken, Message: msg, Code: CodeSubdomainTaken}
}
