package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/registry"
)

type RegistryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRegistryRepository(pool *pgxpool.Pool, log *slog.Logger) *RegistryRepository {
	return &RegistryRepository{
		pool: pool,
		log:  log.With("component", "registry_repository"),
	}
}

func (r *RegistryRepository) SubdomainOwner(ctx context.Context, subdomain string) (string, error) {
	const query = `SELECT box_uuid FROM registry_subdomains WHERE subdomain = $1`

	var boxUUID string
	if err := r.pool.QueryRow(ctx, query, subdomain).Scan(&boxUUID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", registry.ErrNotFound
		}
		return "", fmt.Errorf("lookup subdomain: %w", err)
	}
	return boxUUID, nil
}

const upsertClient = `
	INSERT INTO registry_clients (box_uuid, client_uuid, subdomain, client_type, user_id)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (box_uuid, client_uuid) DO UPDATE
	SET subdomain = EXCLUDED.subdomain,
		client_type = EXCLUDED.client_type,
		user_id = EXCLUDED.user_id,
		updated_at = NOW()
	RETURNING created_at, updated_at`

// claimSubdomain закрепляет поддомен за боксом. Поддомен другого бокса дает ErrSubdomainTaken.
func claimSubdomain(ctx context.Context, tx pgx.Tx, subdomain, boxUUID string) error {
	const claim = `
		INSERT INTO registry_subdomains (subdomain, box_uuid)
		VALUES ($1, $2)
		ON CONFLICT (subdomain) DO NOTHING`

	if _, err := tx.Exec(ctx, claim, subdomain, boxUUID); err != nil {
		return fmt.Errorf("claim subdomain %s: %w", subdomain, err)
	}

	var owner string
	if err := tx.QueryRow(ctx,
		`SELECT box_uuid FROM registry_subdomains WHERE subdomain = $1`, subdomain).Scan(&owner); err != nil {
		return fmt.Errorf("lookup subdomain %s: %w", subdomain, err)
	}
	if owner != boxUUID {
		return registry.ErrSubdomainTaken
	}
	return nil
}

func (r *RegistryRepository) Upsert(ctx context.Context, c *registry.Client) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer r.rollback(ctx, tx, c.BoxUUID)

	if err := claimSubdomain(ctx, tx, c.Subdomain, c.BoxUUID); err != nil {
		return err
	}

	err = tx.QueryRow(ctx, upsertClient,
		c.BoxUUID, c.ClientUUID, c.Subdomain, c.ClientType, c.UserID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit client: %w", err)
	}
	return nil
}

func (r *RegistryRepository) rollback(ctx context.Context, tx pgx.Tx, boxUUID string) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.log.Error("rollback failed", "box_uuid", boxUUID, "error", err)
	}
}

func (r *RegistryRepository) Clients(ctx context.Context, boxUUID string) ([]registry.Client, error) {
	const query = `
		SELECT box_uuid, client_uuid, subdomain, client_type, user_id, created_at, updated_at
		FROM registry_clients
		WHERE box_uuid = $1
		ORDER BY created_at, client_uuid`

	rows, err := r.pool.Query(ctx, query, boxUUID)
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
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer r.rollback(ctx, tx, boxUUID)

	const network = `
		INSERT INTO box_networks (box_uuid, network_client_id)
		VALUES ($1, $2)
		ON CONFLICT (box_uuid) DO UPDATE
		SET network_client_id = EXCLUDED.network_client_id, updated_at = NOW()`

	if _, err := tx.Exec(ctx, network, boxUUID, networkClientID); err != nil {
		return fmt.Errorf("save network client: %w", err)
	}

	claimed := make(map[string]struct{})
	for _, c := range clients {
		if _, ok := claimed[c.Subdomain]; ok {
			continue
		}
		if err := claimSubdomain(ctx, tx, c.Subdomain, boxUUID); err != nil {
			return err
		}
		claimed[c.Subdomain] = struct{}{}
	}

	batch := &pgx.Batch{}
	for _, c := range clients {
		batch.Queue(upsertClient, c.BoxUUID, c.ClientUUID, c.Subdomain, c.ClientType, c.UserID)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("save clients: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
