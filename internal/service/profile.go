package service

import (
	"context"
	"log/slog"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/store"
)

// ProfileService manages user records.
type ProfileService struct {
	store  store.Store
	logger *slog.Logger
}

// NewProfileService creates a profile service.
func NewProfileService(st store.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: st, logger: logger}
}

// EnsureUser fetches the user, creating a profile with the default reading
// speed on first contact. Reports whether the profile was created.
func (s *ProfileService) EnsureUser(ctx context.Context, id, displayName string) (*domain.User, bool, error) {
	user, err := s.store.GetUser(ctx, id)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, false, err
	}

	user = domain.NewUser(id, displayName)
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.Info("created user profile", "user", id)
	return user, true, nil
}

// User fetches a user record.
func (s *ProfileService) User(ctx context.Context, id string) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}
