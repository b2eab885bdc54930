package ports

import (
	"commute-learning-service/internal/domain"
	"context"
)

// Port: a boundary for loading the base pack catalog from a data source.
type CatalogRepository interface {
	// Retrieve all catalog packs in catalog order.
	ListPacks(ctx context.Context) ([]domain.LearningPack, error)
}
