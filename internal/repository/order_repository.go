package repository

import (
	"context"
	"time"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

// CheckoutItem is one cart line as submitted by the buyer. Price and
// name snapshots are taken from the product rows inside the checkout
// transaction, never from the request.
type CheckoutItem struct {
	ProductID uint64
	Quantity  int
}

// OrderRepository owns order persistence. Checkout and Cancel are the
// two multi-row operations in the system and must be atomic: either all
// stock mutations and the order write commit, or none do.
type OrderRepository interface {
	// Checkout locks each product row, verifies stock, decrements it,
	// snapshots name/price/seller per line and creates the order with
	// status pending / payment pending, all in one transaction.
	// Returns domain.ErrProductNotFound or *domain.InsufficientStockError.
	Checkout(ctx context.Context, buyerID uint64, items []CheckoutItem, addr domain.ShippingAddress, method domain.PaymentMethod) (*domain.Order, error)

	// Cancel restores stock for every line, re-flags the products as
	// available and marks the order cancelled, atomically. The pending
	// check is re-done inside the transaction; a lost race returns
	// domain.ErrInvalidState.
	Cancel(ctx context.Context, orderID uint64) (*domain.Order, error)

	// FindByID returns the order with items preloaded, or (nil, nil)
	// when absent.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Order, error)

	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uint64, status domain.PaymentStatus) error

	// SellerSales sums price*quantity over the seller's line items in
	// non-cancelled orders created within [from, to), and counts the
	// distinct orders involved.
	SellerSales(ctx context.Context, sellerID uint64, from, to time.Time) (gross int64, orders int64, err error)
}
