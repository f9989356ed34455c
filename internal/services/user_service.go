package services

import (
	"context"
	"log/slog"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/logging"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type UserService struct {
	users    repository.UserRepository
	notifier notify.Notifier
	log      *slog.Logger
}

func NewUserService(users repository.UserRepository, notifier notify.Notifier) *UserService {
	return &UserService{
		users:    users,
		notifier: notifier,
		log:      logging.New("users"),
	}
}

func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := Authorize(OpUserList, actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Approve unlocks a pending seller or rider account.
func (s *UserService) Approve(ctx context.Context, actor domain.Actor, userID uint64) (*domain.User, error) {
	if err := Authorize(OpUserApprove, actor); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := s.users.SetApproved(ctx, u.ID, true); err != nil {
		return nil, err
	}
	u.Approved = true

	if err := s.notifier.Emit(ctx, notify.UserChannel(u.ID), notify.EventAccountApproved, map[string]any{
		"userId": u.ID,
		"role":   u.Role,
	}); err != nil {
		s.log.Warn("approval notification failed", "user", u.ID, "err", err)
	}
	return u, nil
}
