package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) repository.DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deliveryRepo) Update(ctx context.Context, d *domain.Delivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *deliveryRepo) SoftDelete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&domain.Delivery{}).
		Where("id = ?", id).
		Update("deleted", true).Error
}

func (r *deliveryRepo) FindByID(ctx context.Context, id uint64) (*domain.Delivery, error) {
	var d domain.Delivery
	err := r.db.WithContext(ctx).Where("id = ? AND deleted = ?", id, false).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepo) FindByTracking(ctx context.Context, trackingNumber string) (*domain.Delivery, error) {
	var d domain.Delivery
	err := r.db.WithContext(ctx).
		Where("tracking_number = ? AND deleted = ?", trackingNumber, false).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Delivery, error) {
	return r.list(ctx, "seller_id = ?", sellerID)
}

func (r *deliveryRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]domain.Delivery, error) {
	return r.list(ctx, "buyer_id = ?", buyerID)
}

func (r *deliveryRepo) ListByRider(ctx context.Context, riderID uint64) ([]domain.Delivery, error) {
	return r.list(ctx, "rider_id = ?", riderID)
}

func (r *deliveryRepo) list(ctx context.Context, cond string, arg any) ([]domain.Delivery, error) {
	var out []domain.Delivery
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Where("deleted = ?", false).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
