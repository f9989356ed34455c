package repository

import (
	"context"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetApproved(ctx context.Context, id uint64, approved bool) error
}
