package domain

import "time"

type Expense struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	SellerID   uint64    `json:"sellerId" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"not null"`
	Amount     int64     `json:"amount" gorm:"not null"`
	Category   string    `json:"category"`
	IncurredAt time.Time `json:"incurredAt"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
