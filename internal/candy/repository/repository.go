package repository

import (
	"context"
	"errors"

	"github.com/candies-app/candies/internal/candy"
)

var (
	ErrNotFound = errors.New("candy not found")
)

// Repository is the store abstraction the candy service depends on.
// Implementations must be safe for concurrent use.
type Repository interface {
	List(ctx context.Context) ([]*candy.Candy, error)
	Get(ctx context.Context, id string) (*candy.Candy, error)
	Create(ctx context.Context, c *candy.Candy) error
	// Update applies the supplied fields of p atomically and returns the
	// resulting record.
	Update(ctx context.Context, id string, p candy.Patch) (*candy.Candy, error)
	Delete(ctx context.Context, id string) error
}
