package ports

import (
	"commute-learning-service/internal/domain"
	"context"
)

// Contract for retrieving a single learning pack from an external content source.
type PackFetcher interface {
	// Return the pack identified by id, or an error that the caller may drop.
	FetchPack(ctx context.Context, id string) (domain.LearningPack, error)
}
