package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/logging"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type CreateDeliveryInput struct {
	OrderID     *uint64
	BuyerID     uint64
	PackageName string
	Price       int64
}

// DeliveryService is the sole creator and mutator of Delivery records.
// Every mutating operation checks role and ownership before touching
// the record; a denial has zero side effects.
type DeliveryService struct {
	deliveries repository.DeliveryRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	notifier   notify.Notifier
	log        *slog.Logger
}

func NewDeliveryService(deliveries repository.DeliveryRepository, orders repository.OrderRepository, users repository.UserRepository, notifier notify.Notifier) *DeliveryService {
	return &DeliveryService{
		deliveries: deliveries,
		orders:     orders,
		users:      users,
		notifier:   notifier,
		log:        logging.New("deliveries"),
	}
}

func (s *DeliveryService) Create(ctx context.Context, actor domain.Actor, in CreateDeliveryInput) (*domain.Delivery, error) {
	if err := Authorize(OpDeliveryCreate, actor); err != nil {
		return nil, err
	}
	if in.PackageName == "" {
		return nil, fmt.Errorf("%w: package name is required", domain.ErrInvalidInput)
	}

	buyerID := in.BuyerID
	if in.OrderID != nil {
		o, err := s.orders.FindByID(ctx, *in.OrderID)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, domain.ErrOrderNotFound
		}
		if !o.HasSeller(actor.ID) {
			return nil, domain.ErrForbidden
		}
		buyerID = o.BuyerID
	}
	if buyerID == 0 {
		return nil, fmt.Errorf("%w: buyer is required for a standalone delivery", domain.ErrInvalidInput)
	}

	d := &domain.Delivery{
		OrderID:        in.OrderID,
		SellerID:       actor.ID,
		BuyerID:        buyerID,
		PackageName:    in.PackageName,
		Price:          in.Price,
		TrackingNumber: NewTrackingNumber(),
		Status:         domain.DeliveryPending,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AssignRider pairs a rider with the delivery. Reassignment after a
// rejection is allowed; the new rider must accept explicitly, so the
// accepted flag always resets to nil here.
func (s *DeliveryService) AssignRider(ctx context.Context, actor domain.Actor, deliveryID, riderID uint64) (*domain.Delivery, error) {
	if err := Authorize(OpDeliveryAssign, actor); err != nil {
		return nil, err
	}
	d, err := s.load(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d.SellerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if !d.Assignable() {
		return nil, fmt.Errorf("%w: delivery is already %s", domain.ErrInvalidState, d.Status)
	}

	rider, err := s.users.FindByID(ctx, riderID)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, domain.ErrUserNotFound
	}
	if rider.Role != domain.RoleRider || !rider.Approved {
		return nil, fmt.Errorf("%w: user %d is not an approved rider", domain.ErrInvalidInput, riderID)
	}

	d.RiderID = &riderID
	d.Status = domain.DeliveryAssigned
	d.RiderAccepted = nil
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	payload := map[string]any{"deliveryId": d.ID, "trackingNumber": d.TrackingNumber}
	s.emit(ctx, notify.RiderChannel(riderID), notify.EventDeliveryAssigned, payload)
	s.emit(ctx, notify.UserChannel(d.BuyerID), notify.EventRiderAssigned, payload)
	return d, nil
}

func (s *DeliveryService) Accept(ctx context.Context, actor domain.Actor, deliveryID uint64) (*domain.Delivery, error) {
	return s.decide(ctx, actor, deliveryID, true)
}

// Reject leaves the delivery assigned with riderAccepted=false; the
// seller reassigns manually.
func (s *DeliveryService) Reject(ctx context.Context, actor domain.Actor, deliveryID uint64) (*domain.Delivery, error) {
	return s.decide(ctx, actor, deliveryID, false)
}

func (s *DeliveryService) decide(ctx context.Context, actor domain.Actor, deliveryID uint64, accepted bool) (*domain.Delivery, error) {
	op := OpDeliveryAccept
	if !accepted {
		op = OpDeliveryReject
	}
	if err := Authorize(op, actor); err != nil {
		return nil, err
	}
	d, err := s.load(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if !d.AssignedTo(actor.ID) {
		return nil, domain.ErrForbidden
	}
	if d.RiderAccepted != nil {
		return nil, fmt.Errorf("%w: rider decision already recorded", domain.ErrInvalidState)
	}

	d.RiderAccepted = &accepted
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	event := notify.EventDeliveryAccepted
	if !accepted {
		event = notify.EventDeliveryRejected
	}
	payload := map[string]any{"deliveryId": d.ID, "riderId": actor.ID}
	s.emit(ctx, notify.SellerChannel(d.SellerID), event, payload)
	if accepted {
		s.emit(ctx, notify.UserChannel(d.BuyerID), event, payload)
	}
	return d, nil
}

// UpdateStatus advances the delivery along assigned -> in_transit ->
// delivered. Only the accepted rider may do this; out-of-order targets
// are rejected.
func (s *DeliveryService) UpdateStatus(ctx context.Context, actor domain.Actor, deliveryID uint64, newStatus domain.DeliveryStatus) (*domain.Delivery, error) {
	if err := Authorize(OpDeliveryUpdateStatus, actor); err != nil {
		return nil, err
	}
	d, err := s.load(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if !d.AssignedTo(actor.ID) {
		return nil, domain.ErrForbidden
	}
	if d.RiderAccepted == nil || !*d.RiderAccepted {
		return nil, fmt.Errorf("%w: delivery has not been accepted", domain.ErrInvalidState)
	}
	if !domain.CanTransitionDelivery(d.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move delivery from %s to %s", domain.ErrInvalidState, d.Status, newStatus)
	}

	d.Status = newStatus
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	payload := map[string]any{"deliveryId": d.ID, "status": d.Status, "trackingNumber": d.TrackingNumber}
	s.emit(ctx, notify.UserChannel(d.BuyerID), notify.EventDeliveryUpdate, payload)
	s.emit(ctx, notify.SellerChannel(d.SellerID), notify.EventDeliveryUpdate, payload)

	if newStatus == domain.DeliveryDelivered {
		s.syncOrderFromDelivery(ctx, d)
	}
	return d, nil
}

// syncOrderFromDelivery is the single reconciliation point between the
// two status enums. It only ever moves the linked order forward to
// delivered; an order already delivered, received or cancelled is left
// alone. Failures are logged, the delivery transition stands.
func (s *DeliveryService) syncOrderFromDelivery(ctx context.Context, d *domain.Delivery) {
	if d.OrderID == nil {
		return
	}
	o, err := s.orders.FindByID(ctx, *d.OrderID)
	if err != nil {
		s.log.Warn("order sync lookup failed", "delivery", d.ID, "order", *d.OrderID, "err", err)
		return
	}
	if o == nil {
		s.log.Warn("delivery references missing order", "delivery", d.ID, "order", *d.OrderID)
		return
	}
	switch o.Status {
	case domain.StatusDelivered, domain.StatusReceived, domain.StatusCancelled:
		return
	}
	if err := s.orders.UpdateStatus(ctx, o.ID, domain.StatusDelivered); err != nil {
		s.log.Warn("order sync update failed", "delivery", d.ID, "order", o.ID, "err", err)
		return
	}
	s.emit(ctx, notify.UserChannel(o.BuyerID), notify.EventOrderDelivered, map[string]any{
		"orderId": o.ID,
		"status":  domain.StatusDelivered,
		"message": "order delivered",
	})
}

func (s *DeliveryService) Receive(ctx context.Context, actor domain.Actor, deliveryID uint64) (*domain.Delivery, error) {
	return s.toggleReceipt(ctx, actor, deliveryID, true)
}

func (s *DeliveryService) Unreceive(ctx context.Context, actor domain.Actor, deliveryID uint64) (*domain.Delivery, error) {
	return s.toggleReceipt(ctx, actor, deliveryID, false)
}

func (s *DeliveryService) toggleReceipt(ctx context.Context, actor domain.Actor, deliveryID uint64, receive bool) (*domain.Delivery, error) {
	op := OpDeliveryReceive
	if !receive {
		op = OpDeliveryUnreceive
	}
	if err := Authorize(op, actor); err != nil {
		return nil, err
	}
	d, err := s.load(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d.BuyerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	if receive {
		if d.Status != domain.DeliveryDelivered {
			return nil, fmt.Errorf("%w: delivery is %s, not delivered", domain.ErrInvalidState, d.Status)
		}
		d.Status = domain.DeliveryReceived
	} else {
		if d.Status != domain.DeliveryReceived {
			return nil, fmt.Errorf("%w: delivery is %s, not received", domain.ErrInvalidState, d.Status)
		}
		d.Status = domain.DeliveryDelivered
	}
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	payload := map[string]any{"deliveryId": d.ID, "status": d.Status}
	s.emit(ctx, notify.SellerChannel(d.SellerID), notify.EventDeliveryReceived, payload)
	if d.RiderID != nil {
		s.emit(ctx, notify.RiderChannel(*d.RiderID), notify.EventDeliveryReceived, payload)
	}
	return d, nil
}

func (s *DeliveryService) Delete(ctx context.Context, actor domain.Actor, deliveryID uint64) error {
	if err := Authorize(OpDeliveryDelete, actor); err != nil {
		return err
	}
	d, err := s.load(ctx, deliveryID)
	if err != nil {
		return err
	}
	if d.SellerID != actor.ID {
		return domain.ErrForbidden
	}
	return s.deliveries.SoftDelete(ctx, d.ID)
}

// GetByTracking is the public lookup; no authentication required.
func (s *DeliveryService) GetByTracking(ctx context.Context, trackingNumber string) (*domain.Delivery, error) {
	d, err := s.deliveries.FindByTracking(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDeliveryNotFound
	}
	return d, nil
}

func (s *DeliveryService) ListBySeller(ctx context.Context, actor domain.Actor) ([]domain.Delivery, error) {
	if err := Authorize(OpDeliveryListSeller, actor); err != nil {
		return nil, err
	}
	return s.deliveries.ListBySeller(ctx, actor.ID)
}

func (s *DeliveryService) ListByBuyer(ctx context.Context, actor domain.Actor) ([]domain.Delivery, error) {
	if err := Authorize(OpDeliveryListBuyer, actor); err != nil {
		return nil, err
	}
	return s.deliveries.ListByBuyer(ctx, actor.ID)
}

func (s *DeliveryService) ListByRider(ctx context.Context, actor domain.Actor) ([]domain.Delivery, error) {
	if err := Authorize(OpDeliveryListRider, actor); err != nil {
		return nil, err
	}
	return s.deliveries.ListByRider(ctx, actor.ID)
}

func (s *DeliveryService) load(ctx context.Context, deliveryID uint64) (*domain.Delivery, error) {
	d, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDeliveryNotFound
	}
	return d, nil
}

func (s *DeliveryService) emit(ctx context.Context, channel, event string, payload any) {
	if err := s.notifier.Emit(ctx, channel, event, payload); err != nil {
		s.log.Warn("notification failed", "channel", channel, "event", event, "err", err)
	}
}

// NewTrackingNumber returns a short, uppercase, globally unique handle
// suitable for reading out over the phone.
func NewTrackingNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(raw[:12])
}
