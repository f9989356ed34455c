package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/infra/payment"
	"github.com/Daud2712/E-Commerce-sub000/internal/infra/redisx"
	"github.com/Daud2712/E-Commerce-sub000/internal/logging"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

// PaymentService drives the external gateway: initiate a charge for an
// order, settle it when the gateway calls back. The order id doubles as
// the gateway reference.
type PaymentService struct {
	orders      repository.OrderRepository
	gateway     payment.Gateway
	notifier    notify.Notifier
	redisClient *redis.Client
	log         *slog.Logger
}

func NewPaymentService(orders repository.OrderRepository, gateway payment.Gateway, notifier notify.Notifier) *PaymentService {
	return &PaymentService{
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		log:      logging.New("payments"),
	}
}

// SetRedisClient enables checkout-id correlation across the callback.
func (s *PaymentService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *PaymentService) Initiate(ctx context.Context, actor domain.Actor, orderID uint64, phone string) (string, error) {
	if err := Authorize(OpPaymentInitiate, actor); err != nil {
		return "", err
	}
	if phone == "" {
		return "", fmt.Errorf("%w: phone number is required", domain.ErrInvalidInput)
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o == nil {
		return "", domain.ErrOrderNotFound
	}
	if o.BuyerID != actor.ID {
		return "", domain.ErrForbidden
	}
	if o.PaymentMethod != domain.PaymentMpesa {
		return "", fmt.Errorf("%w: order is payable on delivery", domain.ErrInvalidState)
	}
	if o.PaymentStatus != domain.PaymentPending {
		return "", fmt.Errorf("%w: payment already %s", domain.ErrInvalidState, o.PaymentStatus)
	}

	ref := strconv.FormatUint(o.ID, 10)
	checkoutID, err := s.gateway.Initiate(ctx, phone, o.TotalAmount, ref)
	if err != nil {
		return "", err
	}

	if s.redisClient != nil {
		key := fmt.Sprintf(redisx.KeyPaymentCheckout, checkoutID)
		if err := s.redisClient.Set(ctx, key, ref, redisx.TTLPayment).Err(); err != nil {
			s.log.Warn("checkout correlation store failed", "order", o.ID, "err", err)
		}
	}
	return checkoutID, nil
}

// HandleCallback settles paymentStatus from the gateway's result. The
// callback is unauthenticated, so the checkout id is cross-checked
// against the correlation stored at initiation when redis is available.
func (s *PaymentService) HandleCallback(ctx context.Context, res payment.CallbackResult) error {
	orderID, err := strconv.ParseUint(res.Ref, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad reference %q", domain.ErrInvalidInput, res.Ref)
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrOrderNotFound
	}

	if s.redisClient != nil && res.CheckoutID != "" {
		key := fmt.Sprintf(redisx.KeyPaymentCheckout, res.CheckoutID)
		stored, err := s.redisClient.Get(ctx, key).Result()
		if err == nil && stored != res.Ref {
			return fmt.Errorf("%w: checkout id does not match reference", domain.ErrInvalidInput)
		}
	}

	status := domain.PaymentPaid
	if !res.Success {
		status = domain.PaymentFailed
	}
	if err := s.orders.UpdatePaymentStatus(ctx, o.ID, status); err != nil {
		return err
	}

	if err := s.notifier.Emit(ctx, notify.UserChannel(o.BuyerID), notify.EventPaymentResult, map[string]any{
		"orderId": o.ID,
		"paid":    res.Success,
		"reason":  res.Reason,
	}); err != nil {
		s.log.Warn("payment notification failed", "order", o.ID, "err", err)
	}
	return nil
}
