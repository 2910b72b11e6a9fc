package user

import "context"

// Repository exposes user read operations.
type Repository interface {
	List(ctx context.Context) ([]User, error)
}
