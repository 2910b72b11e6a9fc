package memory

import (
	"context"
	"sync"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	items  map[string]user.User
	orders []string
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	orders := make([]string, 0, len(users))

	for _, u := range users {
		items[u.ID] = u
		orders = append(orders, u.ID)
	}

	return &UserRepository{
		items:  items,
		orders: orders,
	}
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}
