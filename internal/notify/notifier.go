package notify

import (
	"context"
	"fmt"
)

// Notifier fans state transitions out to the affected party's channel.
// Delivery is best-effort and at-most-once: callers log a failed emit
// and move on, the triggering transition is already committed.
type Notifier interface {
	Emit(ctx context.Context, channel, event string, payload any) error
}

// Per-party channels. One channel per user id, keyed by role prefix.
func UserChannel(buyerID uint64) string    { return fmt.Sprintf("user-%d", buyerID) }
func SellerChannel(sellerID uint64) string { return fmt.Sprintf("seller-%d", sellerID) }
func RiderChannel(riderID uint64) string   { return fmt.Sprintf("rider-%d", riderID) }

// Event names. The buyer-facing order events vary by status so clients
// can render specific toasts without parsing the payload.
const (
	EventNewOrder       = "newOrder"
	EventOrderPlaced    = "orderPlaced"
	EventOrderUpdate    = "orderUpdate"
	EventOrderShipped   = "orderShipped"
	EventOrderDelivered = "orderDelivered"
	EventOrderReceived  = "orderReceived"
	EventOrderCancelled = "orderCancelled"

	EventDeliveryAssigned = "deliveryAssigned"
	EventRiderAssigned    = "riderAssigned"
	EventDeliveryAccepted = "deliveryAccepted"
	EventDeliveryRejected = "deliveryRejected"
	EventDeliveryUpdate   = "deliveryUpdate"
	EventDeliveryReceived = "deliveryReceived"

	EventPaymentResult   = "paymentResult"
	EventAccountApproved = "accountApproved"
)

// Noop discards every emit. Used where no broker is configured.
type Noop struct{}

func (Noop) Emit(ctx context.Context, channel, event string, payload any) error { return nil }
