package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/Daud2712/E-Commerce-sub000/internal/auth"
	"github.com/Daud2712/E-Commerce-sub000/internal/config"
	httpctl "github.com/Daud2712/E-Commerce-sub000/internal/controllers/http"
	mmysql "github.com/Daud2712/E-Commerce-sub000/internal/infra/mysql"
	"github.com/Daud2712/E-Commerce-sub000/internal/infra/payment"
	"github.com/Daud2712/E-Commerce-sub000/internal/infra/redisx"
	"github.com/Daud2712/E-Commerce-sub000/internal/logging"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify"
	"github.com/Daud2712/E-Commerce-sub000/internal/notify/rabbitmq"
	mysqlrepo "github.com/Daud2712/E-Commerce-sub000/internal/repository/mysql"
	"github.com/Daud2712/E-Commerce-sub000/internal/services"
)

func main() {
	cfg := config.Load()
	log := logging.Init(cfg.ServiceName, cfg.LogFile)

	db, err := mmysql.New(cfg)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	redisClient := redisx.New(cfg.RedisAddr)

	var notifier notify.Notifier = notify.Noop{}
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		// Notifications are best-effort; the API stays up without the broker.
		log.Warn("rabbitmq unavailable, notifications disabled", "err", err)
	} else {
		notifier = publisher
		defer publisher.Close()
	}

	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	deliveryRepo := mysqlrepo.NewDeliveryRepository(db)
	expenseRepo := mysqlrepo.NewExpenseRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	gateway := payment.NewClient(cfg.PaymentBaseURL, 10*time.Second)

	authSvc := services.NewAuthService(userRepo, tokens)
	userSvc := services.NewUserService(userRepo, notifier)
	productSvc := services.NewProductService(productRepo)
	productSvc.SetRedisClient(redisClient)
	checkoutSvc := services.NewCheckoutService(orderRepo, notifier)
	orderSvc := services.NewOrderService(orderRepo, notifier)
	deliverySvc := services.NewDeliveryService(deliveryRepo, orderRepo, userRepo, notifier)
	paymentSvc := services.NewPaymentService(orderRepo, gateway, notifier)
	paymentSvc.SetRedisClient(redisClient)
	expenseSvc := services.NewExpenseService(expenseRepo)
	reportSvc := services.NewReportService(orderRepo, expenseRepo)

	r := httpctl.NewRouter(httpctl.Handlers{
		Auth:       httpctl.NewAuthHandler(authSvc),
		Products:   httpctl.NewProductHandler(productSvc),
		Orders:     httpctl.NewOrderHandler(checkoutSvc, orderSvc),
		Deliveries: httpctl.NewDeliveryHandler(deliverySvc, redisClient),
		Payments:   httpctl.NewPaymentHandler(paymentSvc),
		Expenses:   httpctl.NewExpenseHandler(expenseSvc),
		Reports:    httpctl.NewReportHandler(reportSvc),
		Users:      httpctl.NewUserHandler(userSvc),
		Tokens:     tokens,
		Log:        log,
	})

	log.Info("starting server", slog.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Error("server run failed", "err", err)
		os.Exit(1)
	}
}
