package menu

import (
	"context"

	"resto-dashboard/internal/domain"
)

// CatalogFetcher pulls the dish catalog from the backend.
type CatalogFetcher interface {
	ListDishes(ctx context.Context) ([]domain.Dish, error)
}

// Service answers catalog queries, fronting the backend with an optional
// cache and the filter/sort pipeline.
type Service struct {
	backend CatalogFetcher
	cache   Cache
}

// NewService wires the fetcher and an optional cache (nil disables caching).
func NewService(backend CatalogFetcher, cache Cache) *Service {
	return &Service{backend: backend, cache: cache}
}

func (s *Service) Dishes(ctx context.Context) ([]domain.Dish, error) {
	if s.cache != nil {
		if dishes, ok := s.cache.Get(ctx); ok {
			return dishes, nil
		}
	}

	dishes, err := s.backend.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dishes {
		dishes[i].Name = CleanName(dishes[i].Name)
	}

	if s.cache != nil {
		s.cache.Set(ctx, dishes)
	}
	return dishes, nil
}

func (s *Service) Filtered(ctx context.Context, filter Filter) ([]domain.Dish, error) {
	dishes, err := s.Dishes(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(dishes), nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	dishes, err := s.Dishes(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(dishes), nil
}

// Invalidate drops the cached catalog, used after a dish is created or
// hidden so the next fetch sees the change.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx)
	}
}
