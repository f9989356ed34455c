package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/mocks"
)

var (
	testBuyer  = domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}
	testSeller = domain.Actor{ID: 2, Role: domain.RoleSeller, Approved: true}
)

func orderFixture(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            10,
		BuyerID:       7,
		TotalAmount:   2000,
		Status:        status,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: domain.PaymentCash,
		Items: []domain.OrderItem{
			{ProductID: 1, SellerID: 2, ProductName: "Mug", Quantity: 2, Price: 1000},
		},
	}
}

func TestOrderService_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		order   *domain.Order
		wantErr error
	}{
		{name: "buyer owner sees the order", actor: testBuyer, order: orderFixture(domain.StatusPending)},
		{name: "other buyer is rejected", actor: domain.Actor{ID: 99, Role: domain.RoleBuyer, Approved: true}, order: orderFixture(domain.StatusPending), wantErr: domain.ErrForbidden},
		{name: "seller with a line item sees the order", actor: testSeller, order: orderFixture(domain.StatusPending)},
		{name: "unrelated seller is rejected", actor: domain.Actor{ID: 50, Role: domain.RoleSeller, Approved: true}, order: orderFixture(domain.StatusPending), wantErr: domain.ErrForbidden},
		{name: "admin sees any order", actor: domain.Actor{ID: 1, Role: domain.RoleAdmin, Approved: true}, order: orderFixture(domain.StatusPending)},
		{name: "missing order maps to not found", actor: testBuyer, order: nil, wantErr: domain.ErrOrderNotFound},
		{name: "rider is rejected", actor: domain.Actor{ID: 3, Role: domain.RoleRider, Approved: true}, order: orderFixture(domain.StatusPending), wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			repo.On("FindByID", mock.Anything, uint64(10)).Return(tt.order, nil)
			svc := NewOrderService(repo, new(mocks.MockNotifier))

			got, err := svc.GetByID(context.Background(), tt.actor, 10)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint64(10), got.ID)
			}
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		actor     domain.Actor
		from      domain.OrderStatus
		to        domain.OrderStatus
		wantErr   error
		wantEvent string
	}{
		{name: "pending to processing", actor: testSeller, from: domain.StatusPending, to: domain.StatusProcessing, wantEvent: "orderUpdate"},
		{name: "processing to shipped", actor: testSeller, from: domain.StatusProcessing, to: domain.StatusShipped, wantEvent: "orderShipped"},
		{name: "shipped to delivered", actor: testSeller, from: domain.StatusShipped, to: domain.StatusDelivered, wantEvent: "orderDelivered"},
		{name: "skipping a stage is rejected", actor: testSeller, from: domain.StatusPending, to: domain.StatusShipped, wantErr: domain.ErrInvalidState},
		{name: "seller cannot mark received", actor: testSeller, from: domain.StatusDelivered, to: domain.StatusReceived, wantErr: domain.ErrInvalidState},
		{name: "seller cannot cancel via status", actor: testSeller, from: domain.StatusPending, to: domain.StatusCancelled, wantErr: domain.ErrInvalidState},
		{name: "received is terminal", actor: testSeller, from: domain.StatusReceived, to: domain.StatusDelivered, wantErr: domain.ErrInvalidState},
		{name: "cancelled is terminal", actor: testSeller, from: domain.StatusCancelled, to: domain.StatusProcessing, wantErr: domain.ErrInvalidState},
		{name: "unrelated seller is rejected", actor: domain.Actor{ID: 50, Role: domain.RoleSeller, Approved: true}, from: domain.StatusPending, to: domain.StatusProcessing, wantErr: domain.ErrForbidden},
		{name: "unapproved seller is rejected", actor: domain.Actor{ID: 2, Role: domain.RoleSeller}, from: domain.StatusPending, to: domain.StatusProcessing, wantErr: domain.ErrForbidden},
		{name: "buyer cannot set status", actor: testBuyer, from: domain.StatusPending, to: domain.StatusProcessing, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			notifier := new(mocks.MockNotifier)
			if Authorize(OpOrderUpdateStatus, tt.actor) == nil {
				repo.On("FindByID", mock.Anything, uint64(10)).Return(orderFixture(tt.from), nil)
			}
			if tt.wantErr == nil {
				repo.On("UpdateStatus", mock.Anything, uint64(10), tt.to).Return(nil)
				notifier.On("Emit", mock.Anything, "user-7", tt.wantEvent, mock.Anything).Return(nil).Once()
			}
			svc := NewOrderService(repo, notifier)

			got, err := svc.UpdateStatus(context.Background(), tt.actor, 10, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, got.Status)
			}
			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestOrderService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		order   *domain.Order
		wantErr error
	}{
		{name: "owner cancels a pending order", actor: testBuyer, order: orderFixture(domain.StatusPending)},
		{name: "other buyer is rejected", actor: domain.Actor{ID: 99, Role: domain.RoleBuyer, Approved: true}, order: orderFixture(domain.StatusPending), wantErr: domain.ErrForbidden},
		{name: "processing order cannot be cancelled", actor: testBuyer, order: orderFixture(domain.StatusProcessing), wantErr: domain.ErrInvalidState},
		{name: "cancelled order cannot be cancelled again", actor: testBuyer, order: orderFixture(domain.StatusCancelled), wantErr: domain.ErrInvalidState},
		{name: "seller cannot cancel", actor: testSeller, order: orderFixture(domain.StatusPending), wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			notifier := new(mocks.MockNotifier)
			if tt.actor.Role == domain.RoleBuyer {
				repo.On("FindByID", mock.Anything, uint64(10)).Return(tt.order, nil)
			}
			if tt.wantErr == nil {
				cancelled := orderFixture(domain.StatusCancelled)
				repo.On("Cancel", mock.Anything, uint64(10)).Return(cancelled, nil)
				notifier.On("Emit", mock.Anything, "seller-2", "orderCancelled", mock.Anything).Return(nil).Once()
			}
			svc := NewOrderService(repo, notifier)

			got, err := svc.Cancel(context.Background(), tt.actor, 10)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusCancelled, got.Status)
			}
			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestOrderService_ConfirmReceipt(t *testing.T) {
	t.Run("delivered cash order settles on receipt", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		notifier := new(mocks.MockNotifier)
		repo.On("FindByID", mock.Anything, uint64(10)).Return(orderFixture(domain.StatusDelivered), nil)
		repo.On("UpdateStatus", mock.Anything, uint64(10), domain.StatusReceived).Return(nil)
		repo.On("UpdatePaymentStatus", mock.Anything, uint64(10), domain.PaymentPaid).Return(nil)
		notifier.On("Emit", mock.Anything, "seller-2", "orderReceived", mock.Anything).Return(nil).Once()
		svc := NewOrderService(repo, notifier)

		got, err := svc.ConfirmReceipt(context.Background(), testBuyer, 10)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusReceived, got.Status)
		assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("mpesa order keeps its payment status", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		notifier := new(mocks.MockNotifier)
		o := orderFixture(domain.StatusDelivered)
		o.PaymentMethod = domain.PaymentMpesa
		o.PaymentStatus = domain.PaymentPaid
		repo.On("FindByID", mock.Anything, uint64(10)).Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, uint64(10), domain.StatusReceived).Return(nil)
		notifier.On("Emit", mock.Anything, "seller-2", "orderReceived", mock.Anything).Return(nil).Once()
		svc := NewOrderService(repo, notifier)

		got, err := svc.ConfirmReceipt(context.Background(), testBuyer, 10)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	})

	t.Run("shipped order cannot be received yet", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		repo.On("FindByID", mock.Anything, uint64(10)).Return(orderFixture(domain.StatusShipped), nil)
		svc := NewOrderService(repo, new(mocks.MockNotifier))

		_, err := svc.ConfirmReceipt(context.Background(), testBuyer, 10)

		assert.ErrorIs(t, err, domain.ErrInvalidState)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only the owner may confirm", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		repo.On("FindByID", mock.Anything, uint64(10)).Return(orderFixture(domain.StatusDelivered), nil)
		svc := NewOrderService(repo, new(mocks.MockNotifier))

		_, err := svc.ConfirmReceipt(context.Background(), domain.Actor{ID: 99, Role: domain.RoleBuyer, Approved: true}, 10)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
