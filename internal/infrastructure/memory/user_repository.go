package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; fuera del TxRunner, con su propio lock.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.usersMu.Lock()
	defer r.s.usersMu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.usersMu.RLock()
	defer r.s.usersMu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.usersMu.RLock()
	defer r.s.usersMu.RUnlock()
	return len(r.s.users), nil
}
