package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

const (
	// Read-through product cache: product:{id} -> product JSON
	KeyProduct = "product:%d"

	// Public tracking lookups: delivery:track:{trackingNumber} -> delivery JSON
	KeyTracking = "delivery:track:%s"

	// Payment correlation: payment:checkout:{checkoutId} -> order id
	KeyPaymentCheckout = "payment:checkout:%s"
)

var (
	TTLProduct  = time.Minute
	TTLTracking = 30 * time.Second
	TTLPayment  = 24 * time.Hour
)
