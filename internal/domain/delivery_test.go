package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionDelivery(t *testing.T) {
	tests := []struct {
		from, to DeliveryStatus
		want     bool
	}{
		{DeliveryAssigned, DeliveryInTransit, true},
		{DeliveryInTransit, DeliveryDelivered, true},

		{DeliveryPending, DeliveryInTransit, false},
		{DeliveryPending, DeliveryAssigned, false},
		{DeliveryAssigned, DeliveryDelivered, false},
		{DeliveryInTransit, DeliveryAssigned, false},
		{DeliveryDelivered, DeliveryInTransit, false},
		{DeliveryDelivered, DeliveryReceived, false},
		{DeliveryReceived, DeliveryDelivered, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionDelivery(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestDeliveryAssignable(t *testing.T) {
	assert.True(t, (&Delivery{Status: DeliveryPending}).Assignable())
	assert.True(t, (&Delivery{Status: DeliveryAssigned}).Assignable())
	assert.False(t, (&Delivery{Status: DeliveryInTransit}).Assignable())
	assert.False(t, (&Delivery{Status: DeliveryDelivered}).Assignable())
	assert.False(t, (&Delivery{Status: DeliveryReceived}).Assignable())
}

func TestDeliveryAssignedTo(t *testing.T) {
	rider := uint64(9)
	assert.False(t, (&Delivery{}).AssignedTo(9))
	assert.True(t, (&Delivery{RiderID: &rider}).AssignedTo(9))
	assert.False(t, (&Delivery{RiderID: &rider}).AssignedTo(3))
}
