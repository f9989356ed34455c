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

// Statuses a seller may move an order to. Receipt confirmation belongs
// to the buyer, cancellation goes through Cancel.
var sellerSettable = map[domain.OrderStatus]bool{
	domain.StatusProcessing: true,
	domain.StatusShipped:    true,
	domain.StatusDelivered:  true,
}

// OrderService owns every Order.status and Order.paymentStatus change
// after creation.
type OrderService struct {
	orders   repository.OrderRepository
	notifier notify.Notifier
	log      *slog.Logger
}

func NewOrderService(orders repository.OrderRepository, notifier notify.Notifier) *OrderService {
	return &OrderService{
		orders:   orders,
		notifier: notifier,
		log:      logging.New("orders"),
	}
}

func (s *OrderService) GetByID(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error) {
	if err := Authorize(OpOrderView, actor); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleBuyer:
		if o.BuyerID != actor.ID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleSeller:
		if !o.HasSeller(actor.ID) {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (s *OrderService) ListByBuyer(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if err := Authorize(OpOrderListBuyer, actor); err != nil {
		return nil, err
	}
	return s.orders.ListByBuyer(ctx, actor.ID)
}

func (s *OrderService) ListBySeller(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if err := Authorize(OpOrderListSeller, actor); err != nil {
		return nil, err
	}
	return s.orders.ListBySeller(ctx, actor.ID)
}

// UpdateStatus lets a seller advance an order they own at least one
// line of. Transition legality comes from the order status table.
func (s *OrderService) UpdateStatus(ctx context.Context, actor domain.Actor, orderID uint64, newStatus domain.OrderStatus) (*domain.Order, error) {
	if err := Authorize(OpOrderUpdateStatus, actor); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.HasSeller(actor.ID) {
		return nil, domain.ErrForbidden
	}
	if !sellerSettable[newStatus] || !domain.CanTransitionOrder(o.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", domain.ErrInvalidState, o.Status, newStatus)
	}

	if err := s.orders.UpdateStatus(ctx, o.ID, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus

	event, message := buyerOrderEvent(newStatus)
	s.emit(ctx, notify.UserChannel(o.BuyerID), event, map[string]any{
		"orderId": o.ID,
		"status":  o.Status,
		"message": message,
	})
	return o, nil
}

// Cancel is buyer-only and legal only while the order is still pending.
// Stock restoration and the status flip are atomic in the repository.
func (s *OrderService) Cancel(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error) {
	if err := Authorize(OpOrderCancel, actor); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if o.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: only pending orders can be cancelled", domain.ErrInvalidState)
	}

	cancelled, err := s.orders.Cancel(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"orderId": cancelled.ID, "status": cancelled.Status}
	for _, sellerID := range cancelled.SellerIDs() {
		s.emit(ctx, notify.SellerChannel(sellerID), notify.EventOrderCancelled, payload)
	}
	return cancelled, nil
}

// ConfirmReceipt is the buyer's one-way confirmation, mirroring the
// delivery receive transition. Cash orders settle here.
func (s *OrderService) ConfirmReceipt(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error) {
	if err := Authorize(OpOrderConfirmReceipt, actor); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if !domain.CanTransitionOrder(o.Status, domain.StatusReceived) {
		return nil, fmt.Errorf("%w: order is %s, not delivered", domain.ErrInvalidState, o.Status)
	}

	if err := s.orders.UpdateStatus(ctx, o.ID, domain.StatusReceived); err != nil {
		return nil, err
	}
	o.Status = domain.StatusReceived

	if o.PaymentMethod == domain.PaymentCash && o.PaymentStatus == domain.PaymentPending {
		if err := s.orders.UpdatePaymentStatus(ctx, o.ID, domain.PaymentPaid); err != nil {
			return nil, err
		}
		o.PaymentStatus = domain.PaymentPaid
	}

	payload := map[string]any{"orderId": o.ID, "status": o.Status}
	for _, sellerID := range o.SellerIDs() {
		s.emit(ctx, notify.SellerChannel(sellerID), notify.EventOrderReceived, payload)
	}
	return o, nil
}

func (s *OrderService) load(ctx context.Context, orderID uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) emit(ctx context.Context, channel, event string, payload any) {
	if err := s.notifier.Emit(ctx, channel, event, payload); err != nil {
		s.log.Warn("notification failed", "channel", channel, "event", event, "err", err)
	}
}

func buyerOrderEvent(st domain.OrderStatus) (event, message string) {
	switch st {
	case domain.StatusShipped:
		return notify.EventOrderShipped, "order shipped"
	case domain.StatusDelivered:
		return notify.EventOrderDelivered, "order delivered"
	default:
		return notify.EventOrderUpdate, "order updated"
	}
}
