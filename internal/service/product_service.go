package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

const productCachePrefix = "product:"

// ProductService coordinates catalog workflows with a Redis read cache in
// front of the repository. Cache failures degrade to the database; they are
// logged and never surfaced.
type ProductService struct {
	products   repository.ProductRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       *redis.Client
	CacheTTL    time.Duration
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewProductService builds the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create inserts a catalog item.
func (s *ProductService) Create(ctx context.Context, actor *domain.Principal, product *domain.Product) (*domain.Product, error) {
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventProductCreated, actor, product.ID)
	return product, nil
}

// Update modifies a catalog item and drops its cache entry.
func (s *ProductService) Update(ctx context.Context, actor *domain.Principal, product *domain.Product) (*domain.Product, error) {
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.ID)
	s.publish(ctx, events.EventProductUpdated, actor, product.ID)
	return product, nil
}

// Delete removes a catalog item and drops its cache entry.
func (s *ProductService) Delete(ctx context.Context, actor *domain.Principal, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, events.EventProductDeleted, actor, id)
	return nil
}

// GetByID serves reads from the cache when possible.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if cached := s.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, product)
	return product, nil
}

// List queries the catalog. Listings are not cached; filters vary too much.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *ProductService) fromCache(ctx context.Context, id string) *domain.Product {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, productCachePrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.Warn("product cache read failed", zap.Error(err))
		}
		return nil
	}
	var product domain.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil
	}
	return &product
}

func (s *ProductService) toCache(ctx context.Context, product *domain.Product) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCachePrefix+product.ID, payload, s.cacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Warn("product cache write failed", zap.Error(err))
	}
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCachePrefix+id).Err(); err != nil && s.logger != nil {
		s.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, actor *domain.Principal, productID string) {
	if s.dispatcher == nil || actor == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
		EntityType: "product",
		EntityID:   productID,
	})
}
