package domain

import "time"

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryReceived  DeliveryStatus = "received"
)

type Delivery struct {
	ID       uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID  *uint64 `json:"orderId" gorm:"index"`
	SellerID uint64  `json:"sellerId" gorm:"not null;index"`
	RiderID  *uint64 `json:"riderId" gorm:"index"`
	BuyerID  uint64  `json:"buyerId" gorm:"not null;index"`

	PackageName string `json:"packageName" gorm:"not null"`
	Price       int64  `json:"price"`
	// TrackingNumber is generated at creation, globally unique and
	// immutable; it is the public lookup handle.
	TrackingNumber string `json:"trackingNumber" gorm:"uniqueIndex;not null"`

	Status DeliveryStatus `json:"status" gorm:"type:enum('pending','assigned','in_transit','delivered','received');default:'pending';index"`
	// RiderAccepted stays nil until a rider is assigned, then resolves to
	// true/false when the rider decides. Reassignment resets it to nil.
	RiderAccepted *bool `json:"riderAccepted"`

	Deleted   bool      `json:"-" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Rider-driven forward transitions. Assignment (pending/assigned ->
// assigned) goes through AssignRider, receipt toggling through
// Receive/Unreceive; neither uses this table.
var deliveryNext = map[DeliveryStatus]map[DeliveryStatus]bool{
	DeliveryAssigned:  {DeliveryInTransit: true},
	DeliveryInTransit: {DeliveryDelivered: true},
}

func CanTransitionDelivery(from, to DeliveryStatus) bool {
	return deliveryNext[from][to]
}

// Assignable reports whether a rider may still be (re)assigned. Once the
// package is moving the pairing is fixed.
func (d *Delivery) Assignable() bool {
	return d.Status == DeliveryPending || d.Status == DeliveryAssigned
}

func (d *Delivery) AssignedTo(riderID uint64) bool {
	return d.RiderID != nil && *d.RiderID == riderID
}
