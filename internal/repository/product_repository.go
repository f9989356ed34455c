package repository

import (
	"context"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	// SoftDelete tombstones the row; historical order items keep
	// referencing it.
	SoftDelete(ctx context.Context, id uint64) error

	// FindByID excludes soft-deleted rows and returns (nil, nil) when
	// absent.
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	ListAvailable(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Product, error)
}
