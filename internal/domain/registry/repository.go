package registry

import "context"

type Repository interface {
	// SubdomainOwner returns the box holding subdomain, or ErrNotFound.
	SubdomainOwner(ctx context.Context, subdomain string) (string, error)
	// Upsert and SaveMigration claim the client subdomains for the box and
	// return ErrSubdomainTaken when another box already holds one.
	Upsert(ctx context.Context, c *Client) error
	Clients(ctx context.Context, boxUUID string) ([]Client, error)
	// SaveMigration stores the network client id and all client bindings of a box atomically.
	SaveMigration(ctx context.Context, boxUUID, networkClientID string, clients []Client) error
}
