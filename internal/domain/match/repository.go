package match

import "context"

// Repository exposes match read/write operations.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	Get(ctx context.Context, id string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, id string) error
}
