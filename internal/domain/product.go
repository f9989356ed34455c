package domain

import "time"

type Product struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       int64     `json:"price" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"not null"`
	SellerID    uint64    `json:"sellerId" gorm:"not null;index"`
	IsAvailable bool      `json:"isAvailable" gorm:"default:true"`
	// Soft delete: rows referenced by historical order items are never
	// removed physically.
	Deleted   bool      `json:"-" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
