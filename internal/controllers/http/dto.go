package http

import "time"

type RegisterRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	Phone              string `json:"phone"`
	Role               string `json:"role" binding:"required,oneof=buyer seller rider"`
	RegistrationNumber string `json:"registrationNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
	IsAvailable *bool  `json:"isAvailable"`
}

type ShippingAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

type CheckoutItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items           []CheckoutItemRequest  `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required,oneof=cash mpesa"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateDeliveryRequest struct {
	OrderID     *uint64 `json:"orderId"`
	BuyerID     uint64  `json:"buyerId"`
	PackageName string  `json:"packageName" binding:"required"`
	Price       int64   `json:"price" binding:"min=0"`
}

type AssignRiderRequest struct {
	RiderID uint64 `json:"riderId" binding:"required"`
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type InitiatePaymentRequest struct {
	OrderID uint64 `json:"orderId" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type PaymentCallbackRequest struct {
	Ref        string `json:"ref" binding:"required"`
	CheckoutID string `json:"checkoutId"`
	Success    bool   `json:"success"`
	Reason     string `json:"reason"`
}

type ExpenseRequest struct {
	Title      string    `json:"title" binding:"required"`
	Amount     int64     `json:"amount" binding:"min=0"`
	Category   string    `json:"category"`
	IncurredAt time.Time `json:"incurredAt"`
}
