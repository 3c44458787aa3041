package pkg

import (
	"context"
)

// Repository is the package record store.
type Repository interface {
	// Find returns ErrVersionNotFound when the identity is unknown.
	Find(ctx context.Context, id Identity) (*Package, error)
	// FindLatest returns the greatest version of (name, type) by the
	// case-insensitive string order, or ErrVersionNotFound.
	FindLatest(ctx context.Context, name string, typ PkgType) (*Package, error)
	List(ctx context.Context, name string, typ PkgType) ([]Package, error)
	// Create returns ErrDuplicateVersion when the identity already exists.
	Create(ctx context.Context, p *Package) error
	// Update returns ErrVersionNotFound when the identity does not exist.
	Update(ctx context.Context, p *Package) error
	// Delete is a no-op for unknown identities.
	Delete(ctx context.Context, id Identity) error
}
