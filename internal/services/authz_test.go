package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

func TestAuthorize(t *testing.T) {
	approvedSeller := domain.Actor{ID: 2, Role: domain.RoleSeller, Approved: true}
	pendingSeller := domain.Actor{ID: 2, Role: domain.RoleSeller}
	pendingRider := domain.Actor{ID: 9, Role: domain.RoleRider}
	buyer := domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}
	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin, Approved: true}

	tests := []struct {
		name    string
		op      Operation
		actor   domain.Actor
		allowed bool
	}{
		{"buyer checks out", OpCheckout, buyer, true},
		{"seller cannot check out", OpCheckout, approvedSeller, false},
		{"admin cannot check out", OpCheckout, admin, false},
		{"approved seller creates products", OpProductCreate, approvedSeller, true},
		{"pending seller cannot create products", OpProductCreate, pendingSeller, false},
		{"pending seller cannot list own orders", OpOrderListSeller, pendingSeller, false},
		{"pending rider cannot accept deliveries", OpDeliveryAccept, pendingRider, false},
		{"approved rider updates delivery status", OpDeliveryUpdateStatus, domain.Actor{ID: 9, Role: domain.RoleRider, Approved: true}, true},
		{"buyer receives deliveries without approval gate", OpDeliveryReceive, domain.Actor{ID: 7, Role: domain.RoleBuyer}, true},
		{"only admins list users", OpUserList, approvedSeller, false},
		{"admin lists users", OpUserList, admin, true},
		{"admin approves accounts", OpUserApprove, admin, true},
		{"unknown operation is denied", Operation("nonsense"), admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.op, tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}
