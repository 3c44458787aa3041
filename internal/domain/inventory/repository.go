package inventory

import "context"

type Repository interface {
	// Upsert inserts the box or replaces the row with the same MAC.
	Upsert(ctx context.Context, b *Box) error
	// List returns all boxes ordered by MAC.
	List(ctx context.Context) ([]Box, error)
}
