package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/voyago-labs/voyago/internal/voyago/domain"
	"github.com/voyago-labs/voyago/internal/voyago/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id. A valid session token can outlive its
// user record, so callers must handle ErrUserNotFound.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
