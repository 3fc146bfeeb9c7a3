package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Tabs struct {
	Cash        string
	Installment string
}

type Service struct {
	source Source
	cache  Cache
	ttl    time.Duration
	tabs   Tabs
	logger *slog.Logger
}

func NewService(source Source, cache Cache, tabs Tabs, ttl time.Duration, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Service{
		source: source,
		cache:  cache,
		ttl:    ttl,
		tabs:   tabs,
		logger: logger,
	}
}

func (s *Service) CashProducts(ctx context.Context) ([]CashProduct, error) {
	return load(ctx, s, KindCash, s.tabs.Cash, NormalizeCash)
}

func (s *Service) InstallmentProducts(ctx context.Context) ([]InstallmentProduct, error) {
	return load(ctx, s, KindInstallment, s.tabs.Installment, NormalizeInstallment)
}

// GroupedCash groups the cash catalog of one brand in display order.
func (s *Service) GroupedCash(ctx context.Context, brand string) ([]ModelGroup, error) {
	products, err := s.CashProducts(ctx)
	if err != nil {
		return nil, err
	}
	return SortGroups(brand, GroupByModel(FilterBrand(products, brand))), nil
}

func (s *Service) GroupedInstallment(ctx context.Context, brand string) ([]ModelGroup, error) {
	products, err := s.InstallmentProducts(ctx)
	if err != nil {
		return nil, err
	}
	return SortGroups(brand, GroupByModel(FilterBrand(products, brand))), nil
}

// Brands lists the brands carried by one catalog, in sheet order.
func (s *Service) Brands(ctx context.Context, kind Kind) ([]string, error) {
	switch kind {
	case KindCash:
		products, err := s.CashProducts(ctx)
		if err != nil {
			return nil, err
		}
		return Brands(products), nil
	case KindInstallment:
		products, err := s.InstallmentProducts(ctx)
		if err != nil {
			return nil, err
		}
		return Brands(products), nil
	default:
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
}

// load serves a catalog from cache inside the revalidation window, otherwise refetches.
// Concurrent misses each fetch; a failed fetch is returned as is, never answered from cache.
func load[T any](ctx context.Context, s *Service, kind Kind, tab string, normalize func([][]string) []T) ([]T, error) {
	key := "catalog:" + string(kind)

	var cached []T
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("catalog cache read failed", "kind", kind, "error", err)
	}
	if hit {
		return cached, nil
	}

	raw, err := s.source.FetchCSV(ctx, tab)
	if err != nil {
		s.logger.Error("catalog fetch failed", "kind", kind, "tab", tab, "error", err)
		return nil, fmt.Errorf("fetch %s catalog: %w", kind, err)
	}

	products := normalize(ParseDocument(raw))
	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, products, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", "kind", kind, "error", err)
		}
	}

	s.logger.Info("catalog refreshed", "kind", kind, "products", len(products))
	return products, nil
}
