package repositories

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/db"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	assert.NoError(t, InitSchema(context.Background(), conn))
}

func TestSeedAndListPreservesOrder(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	packs := domain.DefaultCatalog()
	require.NoError(t, SeedCatalog(ctx, conn, db.DriverSQLite, packs))

	got, err := NewSQLCatalogRepository(conn).ListPacks(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(packs))

	for i := range packs {
		assert.Equal(t, packs[i].ID, got[i].ID)
		assert.Equal(t, packs[i].EstimatedMinutes, got[i].EstimatedMinutes)
		assert.Equal(t, packs[i].Tags, got[i].Tags)
		assert.Equal(t, packs[i].Source, got[i].Source)
	}
}

func TestSeedReplacesPreviousCatalog(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	require.NoError(t, SeedCatalog(ctx, conn, db.DriverSQLite, domain.DefaultCatalog()))
	require.NoError(t, SeedCatalog(ctx, conn, db.DriverSQLite, []domain.LearningPack{
		{ID: "only", Source: domain.SourceDocs, EstimatedMinutes: 4},
	}))

	got, err := NewSQLCatalogRepository(conn).ListPacks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].ID)
	assert.Empty(t, got[0].Tags)
}

func TestSeedRejectsInvalidPack(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	require.NoError(t, SeedCatalog(ctx, conn, db.DriverSQLite, domain.DefaultCatalog()))
	err := SeedCatalog(ctx, conn, db.DriverSQLite, []domain.LearningPack{
		{ID: "bad", Source: domain.SourceDocs, EstimatedMinutes: 0},
	})
	require.Error(t, err)

	got, err := NewSQLCatalogRepository(conn).ListPacks(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 4, "failed seed must roll back")
}

func TestLoadCatalogFileYAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
- id: y-1
  source: docs
  sourceLabel: Go 공식문서
  title: Effective Go
  summary: idioms
  estimatedMinutes: 12
  tags: [Go, 공식문서, Go]
- id: y-2
  source: geeknews
  title: Weekly
  estimatedMinutes: 5
`)

	packs, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, []string{"Go", "공식문서"}, packs[0].Tags)
	assert.Equal(t, domain.SourceGeekNews, packs[1].Source)
}

func TestLoadCatalogFileJSON(t *testing.T) {
	path := writeFile(t, "catalog.json", `[{"id":"j-1","source":"notion","estimatedMinutes":3,"tags":["업무복습"]}]`)

	packs, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, "j-1", packs[0].ID)
}

func TestLoadCatalogFileErrors(t *testing.T) {
	tests := []struct {
		name, file, body string
	}{
		{"duplicate id", "c.json", `[{"id":"a","source":"docs","estimatedMinutes":1},{"id":"a","source":"docs","estimatedMinutes":2}]`},
		{"unknown source", "c.json", `[{"id":"a","source":"blog","estimatedMinutes":1}]`},
		{"zero minutes", "c.yml", "- id: a\n  source: docs\n  estimatedMinutes: 0\n"},
		{"malformed", "c.json", `{`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCatalogFile(writeFile(t, tc.file, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSeedCatalogFromFile(t *testing.T) {
	conn := openTestDB(t)
	path := writeFile(t, "c.json", `[{"id":"a","source":"docs","estimatedMinutes":1},{"id":"b","source":"docs","estimatedMinutes":2}]`)

	n, err := SeedCatalogFromFile(context.Background(), conn, db.DriverSQLite, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestShippedSeedFileLoads(t *testing.T) {
	packs, err := LoadCatalogFile(filepath.Join("..", "..", "..", "data", "seeds", "catalog.yaml"))
	require.NoError(t, err)
	require.Len(t, packs, 5)

	for i, want := range domain.DefaultCatalog() {
		assert.Equal(t, want.ID, packs[i].ID)
		assert.Equal(t, want.EstimatedMinutes, packs[i].EstimatedMinutes)
	}
}
