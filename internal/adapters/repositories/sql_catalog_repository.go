package repositories

import (
	"commute-learning-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQL-backed implementation of the CatalogRepository port.
type SQLCatalogRepository struct{ DB *sql.DB }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db}
}

// Return all catalog packs in seeded order.
func (s *SQLCatalogRepository) ListPacks(ctx context.Context) ([]domain.LearningPack, error) {
	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	query := `
	SELECT
		pack_id,
		source,
		source_label,
		title,
		summary,
		estimated_minutes,
		tags,
		url
	FROM learning_packs
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packs: query learning_packs table: %w", err)
	}
	defer rows.Close()

	packs := make([]domain.LearningPack, 0, 16)
	for rows.Next() {
		var p domain.LearningPack
		var source, tags string
		if err := rows.Scan(&p.ID, &source, &p.SourceLabel, &p.Title, &p.Summary, &p.EstimatedMinutes, &tags, &p.URL); err != nil {
			return nil, fmt.Errorf("list packs: scan row: %w", err)
		}
		p.Source = domain.PackSource(source)

		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("list packs: decode tags for %q: %w", p.ID, err)
		}
		packs = append(packs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packs: row iteration: %w", err)
	}

	return packs, nil
}
