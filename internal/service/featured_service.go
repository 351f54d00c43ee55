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

const featuredCacheKey = "featured:list"

// FeaturedService curates the storefront feature list, with the read side
// cached in Redis.
type FeaturedService struct {
	featured   repository.FeaturedRepository
	products   repository.ProductRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// FeaturedDependencies bundles collaborators for the featured service.
type FeaturedDependencies struct {
	FeaturedRepo repository.FeaturedRepository
	ProductRepo  repository.ProductRepository
	Cache        *redis.Client
	CacheTTL     time.Duration
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewFeaturedService builds the service.
func NewFeaturedService(deps FeaturedDependencies) *FeaturedService {
	return &FeaturedService{
		featured:   deps.FeaturedRepo,
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Replace swaps the curated list and drops the cache.
func (s *FeaturedService) Replace(ctx context.Context, actor *domain.Principal, productIDs []string) error {
	if err := s.featured.Replace(ctx, productIDs); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, featuredCacheKey).Err(); err != nil && s.logger != nil {
			s.logger.Warn("featured cache invalidation failed", zap.Error(err))
		}
	}
	if s.dispatcher != nil && actor != nil {
		s.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventFeaturedUpdated,
			Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
			EntityType: "featured",
		})
	}
	return nil
}

// List returns the featured products in curated order, cache-first.
func (s *FeaturedService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, featuredCacheKey).Bytes()
		if err == nil {
			var products []domain.Product
			if json.Unmarshal(payload, &products) == nil {
				return products, nil
			}
		} else if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.Warn("featured cache read failed", zap.Error(err))
		}
	}

	items, err := s.featured.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve curated order.
	byID := make(map[string]domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	ordered := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if product, ok := byID[item.ProductID]; ok && product.Active {
			ordered = append(ordered, product)
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(ordered); err == nil {
			if err := s.cache.Set(ctx, featuredCacheKey, payload, s.cacheTTL).Err(); err != nil && s.logger != nil {
				s.logger.Warn("featured cache write failed", zap.Error(err))
			}
		}
	}
	return ordered, nil
}
