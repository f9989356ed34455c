package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/mocks"
)

func TestReportService_FinancialSummary(t *testing.T) {
	seller := domain.Actor{ID: 2, Role: domain.RoleSeller, Approved: true}
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("nets sales against expenses", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		expenses := new(mocks.MockExpenseRepository)
		orders.On("SellerSales", mock.Anything, uint64(2), from, to).Return(int64(5000), int64(3), nil)
		expenses.On("SumBySeller", mock.Anything, uint64(2), from, to).Return(int64(2000), nil)
		svc := NewReportService(orders, expenses)

		got, err := svc.FinancialSummary(context.Background(), seller, from, to)

		require.NoError(t, err)
		assert.Equal(t, int64(5000), got.GrossSales)
		assert.Equal(t, int64(3), got.OrderCount)
		assert.Equal(t, int64(2000), got.ExpenseTotal)
		assert.Equal(t, int64(3000), got.Net)
	})

	t.Run("aggregation failure surfaces", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		expenses := new(mocks.MockExpenseRepository)
		orders.On("SellerSales", mock.Anything, uint64(2), from, to).Return(int64(0), int64(0), errors.New("db gone"))
		expenses.On("SumBySeller", mock.Anything, uint64(2), from, to).Return(int64(0), nil).Maybe()
		svc := NewReportService(orders, expenses)

		_, err := svc.FinancialSummary(context.Background(), seller, from, to)

		assert.Error(t, err)
	})

	t.Run("buyers have no report", func(t *testing.T) {
		svc := NewReportService(new(mocks.MockOrderRepository), new(mocks.MockExpenseRepository))

		_, err := svc.FinancialSummary(context.Background(), domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}, from, to)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unapproved seller has no report", func(t *testing.T) {
		svc := NewReportService(new(mocks.MockOrderRepository), new(mocks.MockExpenseRepository))

		_, err := svc.FinancialSummary(context.Background(), domain.Actor{ID: 2, Role: domain.RoleSeller}, from, to)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
