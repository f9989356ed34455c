package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type FinancialSummary struct {
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	GrossSales   int64     `json:"grossSales"`
	OrderCount   int64     `json:"orderCount"`
	ExpenseTotal int64     `json:"expenseTotal"`
	Net          int64     `json:"net"`
}

type ReportService struct {
	orders   repository.OrderRepository
	expenses repository.ExpenseRepository
}

func NewReportService(orders repository.OrderRepository, expenses repository.ExpenseRepository) *ReportService {
	return &ReportService{orders: orders, expenses: expenses}
}

// FinancialSummary aggregates a seller's sales and expenses over
// [from, to). The two aggregation queries are independent and run
// concurrently.
func (s *ReportService) FinancialSummary(ctx context.Context, actor domain.Actor, from, to time.Time) (*FinancialSummary, error) {
	if err := Authorize(OpReportView, actor); err != nil {
		return nil, err
	}

	out := &FinancialSummary{From: from, To: to}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gross, count, err := s.orders.SellerSales(gctx, actor.ID, from, to)
		if err != nil {
			return err
		}
		out.GrossSales = gross
		out.OrderCount = count
		return nil
	})
	g.Go(func() error {
		total, err := s.expenses.SumBySeller(gctx, actor.ID, from, to)
		if err != nil {
			return err
		}
		out.ExpenseTotal = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Net = out.GrossSales - out.ExpenseTotal
	return out, nil
}
