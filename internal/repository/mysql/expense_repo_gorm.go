package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) repository.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Expense{}, id).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uint64) (*domain.Expense, error) {
	var e domain.Expense
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Expense, error) {
	var out []domain.Expense
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("incurred_at DESC").
		Find(&out).Error
	return out, err
}

func (r *expenseRepo) SumBySeller(ctx context.Context, sellerID uint64, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("seller_id = ? AND incurred_at >= ? AND incurred_at < ?", sellerID, from, to).
		Scan(&total).Error
	return total, err
}
