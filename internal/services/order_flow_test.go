package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository/memory"
)

// The flow tests run the services against the in-memory store so the
// check-then-apply stock semantics are real, not canned.

func seedProduct(t *testing.T, store *memory.Store, sellerID uint64, name string, price int64, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Price: price, Stock: stock, SellerID: sellerID, IsAvailable: true}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func TestOrderFlow_CheckoutThroughReceipt(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mug := seedProduct(t, store, 2, "Mug", 1000, 5)
	plate := seedProduct(t, store, 4, "Plate", 500, 3)

	checkout := NewCheckoutService(store.Orders(), notify.Noop{})
	ordersSvc := NewOrderService(store.Orders(), notify.Noop{})

	buyer := domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}
	order, err := checkout.Checkout(ctx, buyer, CheckoutInput{
		Items: []repository.CheckoutItem{
			{ProductID: mug.ID, Quantity: 2},
			{ProductID: plate.ID, Quantity: 3},
		},
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Equal(t, int64(2*1000+3*500), order.TotalAmount)
	assert.Len(t, order.Items, 2)

	// Stock decremented; the plate sold out and went unavailable.
	gotMug, _ := store.Products().FindByID(ctx, mug.ID)
	gotPlate, _ := store.Products().FindByID(ctx, plate.ID)
	assert.Equal(t, 3, gotMug.Stock)
	assert.True(t, gotMug.IsAvailable)
	assert.Equal(t, 0, gotPlate.Stock)
	assert.False(t, gotPlate.IsAvailable)

	// Price snapshot survives later product edits.
	gotMug.Price = 9999
	require.NoError(t, store.Products().Update(ctx, gotMug))
	reloaded, err := ordersSvc.GetByID(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), reloaded.TotalAmount)

	// Either seller advances the order through its lifecycle.
	mugSeller := domain.Actor{ID: 2, Role: domain.RoleSeller, Approved: true}
	for _, st := range []domain.OrderStatus{domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered} {
		_, err := ordersSvc.UpdateStatus(ctx, mugSeller, order.ID, st)
		require.NoError(t, err)
	}

	got, err := ordersSvc.ConfirmReceipt(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, got.Status)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	// Terminal: nothing moves a received order.
	_, err = ordersSvc.UpdateStatus(ctx, mugSeller, order.ID, domain.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = ordersSvc.Cancel(ctx, buyer, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestOrderFlow_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mug := seedProduct(t, store, 2, "Mug", 1000, 2)

	checkout := NewCheckoutService(store.Orders(), notify.Noop{})
	ordersSvc := NewOrderService(store.Orders(), notify.Noop{})
	buyer := domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}

	order, err := checkout.Checkout(ctx, buyer, CheckoutInput{
		Items:         []repository.CheckoutItem{{ProductID: mug.ID, Quantity: 2}},
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	sold, _ := store.Products().FindByID(ctx, mug.ID)
	require.Equal(t, 0, sold.Stock)
	require.False(t, sold.IsAvailable)

	cancelled, err := ordersSvc.Cancel(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	restored, _ := store.Products().FindByID(ctx, mug.ID)
	assert.Equal(t, 2, restored.Stock)
	assert.True(t, restored.IsAvailable)

	// Cancelling twice must not restore stock twice.
	_, err = ordersSvc.Cancel(ctx, buyer, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	again, _ := store.Products().FindByID(ctx, mug.ID)
	assert.Equal(t, 2, again.Stock)
}

func TestOrderFlow_FailedCartLeavesStockUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mug := seedProduct(t, store, 2, "Mug", 1000, 5)
	plate := seedProduct(t, store, 2, "Plate", 500, 1)

	checkout := NewCheckoutService(store.Orders(), notify.Noop{})
	buyer := domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}

	// The second line oversells, so the whole cart must fail and the
	// first line's stock must not move.
	_, err := checkout.Checkout(ctx, buyer, CheckoutInput{
		Items: []repository.CheckoutItem{
			{ProductID: mug.ID, Quantity: 3},
			{ProductID: plate.ID, Quantity: 2},
		},
		PaymentMethod: domain.PaymentCash,
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, plate.ID, stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	gotMug, _ := store.Products().FindByID(ctx, mug.ID)
	gotPlate, _ := store.Products().FindByID(ctx, plate.ID)
	assert.Equal(t, 5, gotMug.Stock)
	assert.Equal(t, 1, gotPlate.Stock)
}

func TestOrderFlow_TwoSellersRaceOnStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mug := seedProduct(t, store, 2, "Mug", 1000, 5)
	plate := seedProduct(t, store, 4, "Plate", 500, 5)

	checkout := NewCheckoutService(store.Orders(), notify.Noop{})
	ordersSvc := NewOrderService(store.Orders(), notify.Noop{})
	buyer := domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}

	order, err := checkout.Checkout(ctx, buyer, CheckoutInput{
		Items: []repository.CheckoutItem{
			{ProductID: mug.ID, Quantity: 1},
			{ProductID: plate.ID, Quantity: 1},
		},
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	mugSeller := domain.Actor{ID: 2, Role: domain.RoleSeller, Approved: true}
	plateSeller := domain.Actor{ID: 4, Role: domain.RoleSeller, Approved: true}

	// Both line-item owners push the pending order to processing at the
	// same time. Each attempt either lands or loses the race with an
	// invalid-state error; the order must come out as processing either
	// way.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, seller := range []domain.Actor{mugSeller, plateSeller} {
		wg.Add(1)
		go func(actor domain.Actor) {
			defer wg.Done()
			_, err := ordersSvc.UpdateStatus(ctx, actor, order.ID, domain.StatusProcessing)
			results <- err
		}(seller)
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidState)
		}
	}
	assert.GreaterOrEqual(t, wins, 1)

	got, err := ordersSvc.GetByID(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	// Last write wins across sellers: one ships it, the other's stale
	// re-send of the old status is rejected without disturbing anything.
	_, err = ordersSvc.UpdateStatus(ctx, plateSeller, order.ID, domain.StatusShipped)
	require.NoError(t, err)
	_, err = ordersSvc.UpdateStatus(ctx, mugSeller, order.ID, domain.StatusProcessing)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err = ordersSvc.GetByID(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)
}

func TestOrderFlow_ConcurrentCheckoutsConserveStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mug := seedProduct(t, store, 2, "Mug", 1000, 5)

	checkout := NewCheckoutService(store.Orders(), notify.Noop{})

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(buyerID uint64) {
			defer wg.Done()
			_, err := checkout.Checkout(ctx, domain.Actor{ID: buyerID, Role: domain.RoleBuyer, Approved: true}, CheckoutInput{
				Items:         []repository.CheckoutItem{{ProductID: mug.ID, Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
			})
			results <- err
		}(uint64(100 + i))
	}
	wg.Wait()
	close(results)

	var ok, oversold int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		oversold++
	}

	assert.Equal(t, 5, ok)
	assert.Equal(t, attempts-5, oversold)

	got, _ := store.Products().FindByID(ctx, mug.ID)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.IsAvailable)
}
