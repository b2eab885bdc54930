package repositories

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/db"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalogFile reads a catalog from a JSON or YAML file (chosen by extension)
// and validates every pack.
func LoadCatalogFile(path string) ([]domain.LearningPack, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", path, err)
	}

	var data []domain.LearningPack
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("load catalog: parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("load catalog: parse json: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(data))
	packs := make([]domain.LearningPack, 0, len(data))
	for i, item := range data {
		item.ID = strings.TrimSpace(item.ID)
		item.Tags = domain.UniqueTags(item.Tags)
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("load catalog: item at index %d: %w", i+1, err)
		}
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("load catalog: duplicate id %q at index %d", item.ID, i+1)
		}
		seen[item.ID] = struct{}{}
		packs = append(packs, item)
	}

	return packs, nil
}

// SeedCatalog replaces the learning_packs table with the given packs,
// preserving their order.
func SeedCatalog(ctx context.Context, conn *sql.DB, driver string, packs []domain.LearningPack) error {
	if conn == nil {
		return errors.New("seed catalog: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM learning_packs;`); err != nil {
		return fmt.Errorf("seed catalog: clear table: %w", err)
	}

	query := db.Rebind(driver, `
	INSERT INTO learning_packs (
		pack_id,
		position,
		source,
		source_label,
		title,
		summary,
		estimated_minutes,
		tags,
		url
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range packs {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}

		tags, err := json.Marshal(domain.UniqueTags(p.Tags))
		if err != nil {
			return fmt.Errorf("seed catalog: encode tags for %q: %w", p.ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			p.ID, i, string(p.Source), p.SourceLabel, p.Title, p.Summary, p.EstimatedMinutes, string(tags), p.URL,
		); err != nil {
			return fmt.Errorf("seed catalog: insert pack_id=%q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

// SeedCatalogFromFile loads a catalog file and seeds it into the database.
func SeedCatalogFromFile(ctx context.Context, conn *sql.DB, driver string, path string) (int, error) {
	packs, err := LoadCatalogFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}

	if err := SeedCatalog(ctx, conn, driver, packs); err != nil {
		return 0, err
	}

	return len(packs), nil
}
