package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/infra/redisx"
	"github.com/Daud2712/E-Commerce-sub000/internal/logging"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	IsAvailable bool
}

type ProductService struct {
	products    repository.ProductRepository
	redisClient *redis.Client
	log         *slog.Logger
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{
		products: products,
		log:      logging.New("products"),
	}
}

// SetRedisClient enables the read-through cache; without it every read
// goes straight to the store.
func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *ProductService) Create(ctx context.Context, actor domain.Actor, in ProductInput) (*domain.Product, error) {
	if err := Authorize(OpProductCreate, actor); err != nil {
		return nil, err
	}
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		SellerID:    actor.ID,
		IsAvailable: in.IsAvailable && in.Stock > 0,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, actor domain.Actor, id uint64, in ProductInput) (*domain.Product, error) {
	if err := Authorize(OpProductUpdate, actor); err != nil {
		return nil, err
	}
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.IsAvailable = in.IsAvailable && in.Stock > 0
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, actor domain.Actor, id uint64) error {
	if err := Authorize(OpProductDelete, actor); err != nil {
		return err
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if p.SellerID != actor.ID {
		return domain.ErrForbidden
	}
	if err := s.products.SoftDelete(ctx, p.ID); err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return nil
}

// GetByID serves from the redis cache when possible, falling back to
// the store and repopulating on a miss.
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf(redisx.KeyProduct, id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, redisx.TTLProduct)
		}
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAvailable(ctx)
}

func (s *ProductService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Product, error) {
	if err := Authorize(OpProductListMine, actor); err != nil {
		return nil, err
	}
	return s.products.ListBySeller(ctx, actor.ID)
}

func (s *ProductService) load(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) invalidate(ctx context.Context, id uint64) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, fmt.Sprintf(redisx.KeyProduct, id)).Err(); err != nil {
		s.log.Warn("cache invalidation failed", "product", id, "err", err)
	}
}

func validateProductInput(in ProductInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
