package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Checkout runs the whole reserve-and-create sequence in one transaction.
// Each product row is locked with FOR UPDATE before the stock check, so
// two concurrent checkouts against the same product serialize and total
// decremented stock can never exceed what was available.
func (r *orderRepo) Checkout(ctx context.Context, buyerID uint64, items []repository.CheckoutItem, addr domain.ShippingAddress, method domain.PaymentMethod) (*domain.Order, error) {
	var out *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := &domain.Order{
			BuyerID:         buyerID,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
			PaymentMethod:   method,
			ShippingAddress: addr,
		}

		var total int64
		for _, it := range items {
			var p domain.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND deleted = ?", it.ProductID, false).
				First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			if err != nil {
				return err
			}

			if p.Stock < it.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   it.Quantity,
					Available:   p.Stock,
				}
			}

			updates := map[string]any{"stock": gorm.Expr("stock - ?", it.Quantity)}
			if p.Stock == it.Quantity {
				updates["is_available"] = false
			}
			if err := tx.Model(&domain.Product{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
				return err
			}

			// Snapshot name/price/seller at this instant; the line must
			// survive later product mutation.
			order.Items = append(order.Items, domain.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       p.Price,
				SellerID:    p.SellerID,
			})
			total += p.Price * int64(it.Quantity)
		}

		order.TotalAmount = total
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel re-checks the pending status under lock before restoring stock,
// so a cancel racing a seller's status update cannot double-restore.
func (r *orderRepo) Cancel(ctx context.Context, orderID uint64) (*domain.Order, error) {
	var out *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o domain.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if o.Status != domain.StatusPending {
			return domain.ErrInvalidState
		}
		if err := tx.Where("order_id = ?", o.ID).Find(&o.Items).Error; err != nil {
			return err
		}

		for _, it := range o.Items {
			err := tx.Model(&domain.Product{}).Where("id = ?", it.ProductID).Updates(map[string]any{
				"stock":        gorm.Expr("stock + ?", it.Quantity),
				"is_available": true,
			}).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Model(&o).Update("status", domain.StatusCancelled).Error; err != nil {
			return err
		}
		o.Status = domain.StatusCancelled
		out = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.seller_id = ?", sellerID).
		Group("orders.id").
		Order("orders.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (r *orderRepo) SellerSales(ctx context.Context, sellerID uint64, from, to time.Time) (int64, int64, error) {
	var res struct {
		Gross  int64
		Orders int64
	}
	err := r.db.WithContext(ctx).Model(&domain.OrderItem{}).
		Select("COALESCE(SUM(order_items.price * order_items.quantity), 0) AS gross, COUNT(DISTINCT order_items.order_id) AS orders").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.seller_id = ? AND orders.status <> ? AND orders.created_at >= ? AND orders.created_at < ?",
			sellerID, domain.StatusCancelled, from, to).
		Scan(&res).Error
	if err != nil {
		return 0, 0, err
	}
	return res.Gross, res.Orders, nil
}
