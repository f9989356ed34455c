package domain

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleRider  Role = "rider"
	RoleAdmin  Role = "admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleRider, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                 uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name               string    `json:"name" gorm:"not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string    `json:"-" gorm:"not null"`
	Phone              string    `json:"phone"`
	Role               Role      `json:"role" gorm:"type:enum('buyer','seller','rider','admin');default:'buyer';index"`
	Approved           bool      `json:"approved" gorm:"default:false"`
	RegistrationNumber string    `json:"registrationNumber"`
	CreatedAt          time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Actor is the authenticated identity attached to a request after
// token verification. Services authorize against it, never against
// raw request fields.
type Actor struct {
	ID       uint64
	Role     Role
	Approved bool
}
