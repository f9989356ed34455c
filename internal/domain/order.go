package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusReceived   OrderStatus = "received"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentMpesa PaymentMethod = "mpesa"
)

type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type Order struct {
	ID      uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	BuyerID uint64      `json:"buyerId" gorm:"not null;index"`
	Items   []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	// TotalAmount is computed once at checkout from the snapshotted item
	// prices and is never recomputed from live product rows.
	TotalAmount     int64           `json:"totalAmount" gorm:"not null"`
	Status          OrderStatus     `json:"status" gorm:"type:enum('pending','processing','shipped','delivered','received','cancelled');default:'pending';index"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"type:enum('pending','paid','failed');default:'pending'"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" gorm:"type:enum('cash','mpesa');default:'cash'"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:ship_"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem snapshots the product name, price and seller at checkout so
// the line survives later product mutation or soft deletion.
type OrderItem struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64 `json:"orderId" gorm:"not null;index"`
	ProductID   uint64 `json:"productId" gorm:"not null"`
	ProductName string `json:"productName" gorm:"not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	Price       int64  `json:"price" gorm:"not null"`
	SellerID    uint64 `json:"sellerId" gorm:"not null;index"`
}

var orderNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {StatusReceived: true},
	StatusReceived:   {},
	StatusCancelled:  {},
}

func CanTransitionOrder(from, to OrderStatus) bool {
	return orderNext[from][to]
}

// HasSeller reports whether any line item of the order belongs to the
// given seller. Ownership of a single line is enough to act on the order.
func (o *Order) HasSeller(sellerID uint64) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// SellerIDs returns the distinct sellers referenced by the order's items,
// in first-appearance order.
func (o *Order) SellerIDs() []uint64 {
	seen := make(map[uint64]bool, len(o.Items))
	var out []uint64
	for _, it := range o.Items {
		if !seen[it.SellerID] {
			seen[it.SellerID] = true
			out = append(out, it.SellerID)
		}
	}
	return out
}
