// Package memory holds an in-process implementation of the product and
// order repositories. It backs the service tests that need real
// check-then-apply semantics instead of canned mock returns; checkout
// and cancel are atomic under one mutex, matching the transactional
// guarantees of the mysql implementations.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

// Store owns the shared state; Products() and Orders() expose the two
// repository views over it.
type Store struct {
	mu       sync.Mutex
	products map[uint64]*domain.Product
	orders   map[uint64]*domain.Order

	nextProductID uint64
	nextOrderID   uint64
	nextItemID    uint64
}

func NewStore() *Store {
	return &Store{
		products: make(map[uint64]*domain.Product),
		orders:   make(map[uint64]*domain.Order),
	}
}

func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }
func (s *Store) Orders() repository.OrderRepository     { return &orderRepo{s} }

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextProductID++
	p.ID = r.s.nextProductID
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) SoftDelete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Deleted = true
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || p.Deleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Product
	for _, p := range r.s.products {
		if !p.Deleted && p.IsAvailable {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *productRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Product
	for _, p := range r.s.products {
		if !p.Deleted && p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type orderRepo struct{ s *Store }

// Checkout validates every line against current stock before mutating
// anything, so a failed cart leaves stock untouched.
func (r *orderRepo) Checkout(ctx context.Context, buyerID uint64, items []repository.CheckoutItem, addr domain.ShippingAddress, method domain.PaymentMethod) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, it := range items {
		p, ok := r.s.products[it.ProductID]
		if !ok || p.Deleted {
			return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, it.ProductID)
		}
		if p.Stock < it.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   it.Quantity,
				Available:   p.Stock,
			}
		}
	}

	r.s.nextOrderID++
	o := &domain.Order{
		ID:              r.s.nextOrderID,
		BuyerID:         buyerID,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   method,
		ShippingAddress: addr,
		CreatedAt:       time.Now(),
	}
	for _, it := range items {
		p := r.s.products[it.ProductID]
		p.Stock -= it.Quantity
		if p.Stock == 0 {
			p.IsAvailable = false
		}
		r.s.nextItemID++
		o.Items = append(o.Items, domain.OrderItem{
			ID:          r.s.nextItemID,
			OrderID:     o.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			Price:       p.Price,
			SellerID:    p.SellerID,
		})
		o.TotalAmount += p.Price * int64(it.Quantity)
	}
	r.s.orders[o.ID] = o
	return cloneOrder(o), nil
}

func (r *orderRepo) Cancel(ctx context.Context, orderID uint64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrInvalidState, o.Status)
	}

	for _, it := range o.Items {
		if p, ok := r.s.products[it.ProductID]; ok {
			p.Stock += it.Quantity
			p.IsAvailable = true
		}
	}
	o.Status = domain.StatusCancelled
	return cloneOrder(o), nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Order
	for _, o := range r.s.orders {
		if o.BuyerID == buyerID {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (r *orderRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Order
	for _, o := range r.s.orders {
		if o.HasSeller(sellerID) {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *orderRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status domain.PaymentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.PaymentStatus = status
	return nil
}

func (r *orderRepo) SellerSales(ctx context.Context, sellerID uint64, from, to time.Time) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var gross, count int64
	for _, o := range r.s.orders {
		if o.Status == domain.StatusCancelled || o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		var hit bool
		for _, it := range o.Items {
			if it.SellerID == sellerID {
				gross += it.Price * int64(it.Quantity)
				hit = true
			}
		}
		if hit {
			count++
		}
	}
	return gross, count, nil
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp
}
