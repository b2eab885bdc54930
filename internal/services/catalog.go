package services

import (
	"commute-learning-service/internal/domain"
	"log"
)

// Catalog is the immutable base set of packs known to the service.
// It is built once at startup and shared read-only; accessors return copies.
type Catalog struct {
	packs []domain.LearningPack
}

// NewCatalog copies packs into a Catalog, dropping records that fail validation.
func NewCatalog(packs []domain.LearningPack) Catalog {
	out := make([]domain.LearningPack, 0, len(packs))
	for _, p := range packs {
		if err := p.Validate(); err != nil {
			log.Printf("catalog: skipping invalid pack: %v", err)
			continue
		}
		out = append(out, p.Clone())
	}
	return Catalog{packs: out}
}

// Packs returns a copy of the catalog in catalog order.
func (c Catalog) Packs() []domain.LearningPack {
	out := make([]domain.LearningPack, len(c.packs))
	for i, p := range c.packs {
		out[i] = p.Clone()
	}
	return out
}

// Len reports how many valid packs the catalog holds.
func (c Catalog) Len() int { return len(c.packs) }
