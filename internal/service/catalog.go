package service

import (
	"context"

	"greenhouse_sim/internal/catalog"
)

type CatalogService struct {
	set *catalog.Set
}

func NewCatalogService(set *catalog.Set) *CatalogService {
	return &CatalogService{set: set}
}

func (s *CatalogService) Snapshot(_ context.Context) CatalogSnapshot {
	if s.set == nil {
		return CatalogSnapshot{}
	}
	return CatalogSnapshot{
		Crops:     s.set.Crops.Entries(),
		Materials: s.set.Materials.Entries(),
		Climates:  s.set.Climates.Entries(),
		Nursery:   s.set.Nursery.Entries(),
		Prices:    append([]catalog.PricePlan(nil), s.set.Prices...),
	}
}
