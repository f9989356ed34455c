package repository

import (
	"context"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

type DeliveryRepository interface {
	Create(ctx context.Context, d *domain.Delivery) error
	Update(ctx context.Context, d *domain.Delivery) error
	SoftDelete(ctx context.Context, id uint64) error

	FindByID(ctx context.Context, id uint64) (*domain.Delivery, error)
	FindByTracking(ctx context.Context, trackingNumber string) (*domain.Delivery, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Delivery, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]domain.Delivery, error)
	ListByRider(ctx context.Context, riderID uint64) ([]domain.Delivery, error)
}
