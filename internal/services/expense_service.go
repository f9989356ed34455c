package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type ExpenseInput struct {
	Title      string
	Amount     int64
	Category   string
	IncurredAt time.Time
}

type ExpenseService struct {
	expenses repository.ExpenseRepository
}

func NewExpenseService(expenses repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) Create(ctx context.Context, actor domain.Actor, in ExpenseInput) (*domain.Expense, error) {
	if err := Authorize(OpExpenseManage, actor); err != nil {
		return nil, err
	}
	if err := validateExpenseInput(in); err != nil {
		return nil, err
	}

	e := &domain.Expense{
		SellerID:   actor.ID,
		Title:      in.Title,
		Amount:     in.Amount,
		Category:   in.Category,
		IncurredAt: in.IncurredAt,
	}
	if e.IncurredAt.IsZero() {
		e.IncurredAt = time.Now()
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, actor domain.Actor, id uint64, in ExpenseInput) (*domain.Expense, error) {
	if err := Authorize(OpExpenseManage, actor); err != nil {
		return nil, err
	}
	if err := validateExpenseInput(in); err != nil {
		return nil, err
	}
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	e.Title = in.Title
	e.Amount = in.Amount
	e.Category = in.Category
	if !in.IncurredAt.IsZero() {
		e.IncurredAt = in.IncurredAt
	}
	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, actor domain.Actor, id uint64) error {
	if err := Authorize(OpExpenseManage, actor); err != nil {
		return err
	}
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.expenses.Delete(ctx, e.ID)
}

func (s *ExpenseService) List(ctx context.Context, actor domain.Actor) ([]domain.Expense, error) {
	if err := Authorize(OpExpenseManage, actor); err != nil {
		return nil, err
	}
	return s.expenses.ListBySeller(ctx, actor.ID)
}

func (s *ExpenseService) load(ctx context.Context, actor domain.Actor, id uint64) (*domain.Expense, error) {
	e, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrExpenseNotFound
	}
	if e.SellerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func validateExpenseInput(in ExpenseInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: expense title is required", domain.ErrInvalidInput)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
