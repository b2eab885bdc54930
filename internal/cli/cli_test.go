package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, k := range []string{"DB_DRIVER", "DATABASE_URL", "CATALOG_PATH", "GOOGLE_MAPS_API_KEY", "KAKAO_REST_API_KEY", "DEFAULT_MINUTES"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_PATH", filepath.Join(dir, "app.db"))
	t.Setenv("KV_BACKEND", "sql")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema ready driver=sqlite")
}

func TestSelectUsesBuiltInCatalog(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "select", "--minutes", "15")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "notion-1"))
	assert.True(t, strings.HasPrefix(lines[2], "gn-1"))
	assert.Contains(t, lines[3], "13/15")
}

func TestSeedThenSelect(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
	  {"id":"a","source":"docs","title":"A","estimatedMinutes":4},
	  {"id":"b","source":"docs","title":"B","estimatedMinutes":30}
	]`), 0o600))

	out, err := run(t, "seed", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 packs")

	out, err = run(t, "select", "-m", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "4/10")
	assert.NotContains(t, out, "notion-1")
}

func TestSeedRequiresFile(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "seed")
	assert.Error(t, err)
}

func TestRoutesAddListRemove(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "routes", "add", "--id", "work", "--label", "출근", "--origin", "강남", "--destination", "잠실", "--minutes", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "saved work")

	out, err = run(t, "routes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "잠실")

	out, err = run(t, "routes", "rm", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "0 routes left")

	_, err = run(t, "routes", "add", "--label", "x")
	assert.Error(t, err)
}

func TestRouteTimeEstimate(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "route-time", "홍대", "신촌")
	require.NoError(t, err)
	assert.Contains(t, out, "10 min")
	assert.Contains(t, out, "(estimate)")

	_, err = run(t, "route-time", "홍대", "신촌", "--mode", "flying")
	assert.Error(t, err)
}
