package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/logging"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type CheckoutInput struct {
	Items           []repository.CheckoutItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
}

// CheckoutService converts a cart into a committed order plus stock
// decrements. The atomic unit lives in OrderRepository.Checkout; this
// layer does validation, authorization and the post-commit fan-out.
type CheckoutService struct {
	orders   repository.OrderRepository
	notifier notify.Notifier
	log      *slog.Logger
}

func NewCheckoutService(orders repository.OrderRepository, notifier notify.Notifier) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		notifier: notifier,
		log:      logging.New("checkout"),
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, actor domain.Actor, in CheckoutInput) (*domain.Order, error) {
	if err := Authorize(OpCheckout, actor); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %d", domain.ErrInvalidInput, it.ProductID)
		}
	}
	switch in.PaymentMethod {
	case domain.PaymentCash, domain.PaymentMpesa:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, in.PaymentMethod)
	}

	order, err := s.orders.Checkout(ctx, actor.ID, in.Items, in.ShippingAddress, in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// The order is committed at this point; fan-out failures are logged
	// and swallowed, never surfaced to the buyer.
	s.fanout(ctx, order)
	return order, nil
}

func (s *CheckoutService) fanout(ctx context.Context, order *domain.Order) {
	payload := map[string]any{
		"orderId":     order.ID,
		"totalAmount": order.TotalAmount,
		"status":      order.Status,
	}
	for _, sellerID := range order.SellerIDs() {
		if err := s.notifier.Emit(ctx, notify.SellerChannel(sellerID), notify.EventNewOrder, payload); err != nil {
			s.log.Warn("seller notification failed", "order", order.ID, "seller", sellerID, "err", err)
		}
	}
	if err := s.notifier.Emit(ctx, notify.UserChannel(order.BuyerID), notify.EventOrderPlaced, payload); err != nil {
		s.log.Warn("buyer notification failed", "order", order.ID, "buyer", order.BuyerID, "err", err)
	}
}
