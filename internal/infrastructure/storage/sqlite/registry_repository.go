package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/registry"
)

type RegistryRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRegistryRepository(db *sql.DB, log *slog.Logger) *RegistryRepository {
	return &RegistryRepository{
		db:  db,
		log: log.With("component", "registry_repository"),
	}
}

func (r *RegistryRepository) SubdomainOwner(ctx context.Context, subdomain string) (string, error) {
	var boxUUID string
	err := r.db.QueryRowContext(ctx,
		`SELECT box_uuid FROM registry_subdomains WHERE subdomain = ?`, subdomain).Scan(&boxUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", registry.ErrNotFound
		}
		return "", fmt.Errorf("lookup subdomain: %w", err)
	}
	return boxUUID, nil
}

const upsertClient = `
	INSERT INTO registry_clients (box_uuid, client_uuid, subdomain, client_type, user_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (box_uuid, client_uuid) DO UPDATE
	SET subdomain = excluded.subdomain,
		client_type = excluded.client_type,
		user_id = excluded.user_id,
		updated_at = excluded.updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// claimSubdomain закрепляет поддомен за боксом. Поддомен другого бокса дает ErrSubdomainTaken.
func claimSubdomain(ctx context.Context, db execer, subdomain, boxUUID string, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO registry_subdomains (subdomain, box_uuid, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (subdomain) DO NOTHING`, subdomain, boxUUID, now)
	if err != nil {
		return fmt.Errorf("claim subdomain %s: %w", subdomain, err)
	}

	var owner string
	if err := db.QueryRowContext(ctx,
		`SELECT box_uuid FROM registry_subdomains WHERE subdomain = ?`, subdomain).Scan(&owner); err != nil {
		return fmt.Errorf("lookup subdomain %s: %w", subdomain, err)
	}
	if owner != boxUUID {
		return registry.ErrSubdomainTaken
	}
	return nil
}

func upsert(ctx context.Context, db execer, c *registry.Client, now time.Time) error {
	_, err := db.ExecContext(ctx, upsertClient,
		c.BoxUUID, c.ClientUUID, c.Subdomain, c.ClientType, c.UserID, now, now)
	if err != nil {
		return fmt.Errorf("upsert client %s: %w", c.ClientUUID, err)
	}
	return nil
}

func (r *RegistryRepository) Upsert(ctx context.Context, c *registry.Client) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if err := claimSubdomain(ctx, tx, c.Subdomain, c.BoxUUID, now); err != nil {
		return err
	}
	if err := upsert(ctx, tx, c, now); err != nil {
		return err
	}

	var createdAt time.Time
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM registry_clients WHERE box_uuid = ? AND client_uuid = ?`,
		c.BoxUUID, c.ClientUUID).Scan(&createdAt); err != nil {
		return fmt.Errorf("read client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit client: %w", err)
	}
	c.CreatedAt, c.UpdatedAt = createdAt, now
	return nil
}

func (r *RegistryRepository) Clients(ctx context.Context, boxUUID string) ([]registry.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT box_uuid, client_uuid, subdomain, client_type, user_id, created_at, updated_at
		FROM registry_clients
		WHERE box_uuid = ?
		ORDER BY created_at, client_uuid`, boxUUID)
	if err != nil {
		r.log.Error("failed to list clients", "box_uuid", boxUUID, "error", err)
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []registry.Client
	for rows.Next() {
		var c registry.Client
		if err := rows.Scan(&c.BoxUUID, &c.ClientUUID, &c.Subdomain, &c.ClientType, &c.UserID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *RegistryRepository) SaveMigration(ctx context.Context, boxUUID, networkClientID string, clients []registry.Client) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO box_networks (box_uuid, network_client_id, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (box_uuid) DO UPDATE
		SET network_client_id = excluded.network_client_id, updated_at = excluded.updated_at`,
		boxUUID, networkClientID, now)
	if err != nil {
		return fmt.Errorf("save network client: %w", err)
	}

	claimed := make(map[string]struct{})
	for _, c := range clients {
		if _, ok := claimed[c.Subdomain]; ok {
			continue
		}
		if err := claimSubdomain(ctx, tx, c.Subdomain, boxUUID, now); err != nil {
			return err
		}
		claimed[c.Subdomain] = struct{}{}
	}

	for i := range clients {
		if err := upsert(ctx, tx, &clients[i], now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
