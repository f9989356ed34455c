package repository

import (
	"context"
	"time"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id uint64) error

	FindByID(ctx context.Context, id uint64) (*domain.Expense, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Expense, error)
	SumBySeller(ctx context.Context, sellerID uint64, from, to time.Time) (int64, error)
}
