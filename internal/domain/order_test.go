package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, StatusReceived, true},

		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusCancelled, false},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusShipped, false},
		{StatusReceived, StatusDelivered, false},
		{StatusReceived, StatusReceived, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionOrder(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderSellerHelpers(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{SellerID: 2, ProductID: 1},
		{SellerID: 4, ProductID: 3},
		{SellerID: 2, ProductID: 8},
	}}

	assert.True(t, o.HasSeller(2))
	assert.True(t, o.HasSeller(4))
	assert.False(t, o.HasSeller(5))

	assert.Equal(t, []uint64{2, 4}, o.SellerIDs())
	assert.Empty(t, (&Order{}).SellerIDs())
}
