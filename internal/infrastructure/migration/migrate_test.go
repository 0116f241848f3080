package migration

import (
	"database/sql"
	"io/fs"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", config.SQLiteDSN(":memory:"))
	require.NoError(t, err)
	// every connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n))
	return n == 1
}

func indexExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name).Scan(&n))
	return n == 1
}

func TestSource(t *testing.T) {
	for _, driver := range Drivers {
		t.Run(driver, func(t *testing.T) {
			src, err := Source(driver)
			require.NoError(t, err)
			_, err = fs.Stat(src, "000001_create_categories.up.sql")
			assert.NoError(t, err)
		})
	}

	_, err := Source("mysql")
	assert.Error(t, err)
}

func TestEmbeddedMigrations_InLockstep(t *testing.T) {
	pg, err := EmbeddedMigrations(config.DriverPostgres)
	require.NoError(t, err)
	lite, err := EmbeddedMigrations(config.DriverSQLite)
	require.NoError(t, err)

	assert.Equal(t, pg, lite)
	assert.Equal(t, []string{
		"000001_create_categories",
		"000002_create_tags",
		"000003_create_products",
		"000004_create_product_tags",
	}, pg)
}

func TestMigrator_SQLite(t *testing.T) {
	db := openMemoryDB(t)
	m, err := New(db, config.DriverSQLite, zaptest.NewLogger(t))
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)

	for _, table := range []string{"categories", "tags", "products", "product_tags"} {
		assert.True(t, tableExists(t, db, table), table)
	}
	for _, idx := range []string{
		"cat_parent_slug_idx", "cat_unique_slug_per_parent_ci", "cat_unique_root_slug_ci",
		"tag_slug_idx", "tag_name_ci_unique", "tag_slug_ci_unique",
		"product_slug_idx", "product_created_idx", "product_category_created_idx",
		"product_name_ci_unique_active", "product_slug_ci_unique_active",
		"product_tag_idx", "tag_product_idx",
	} {
		assert.True(t, indexExists(t, db, idx), idx)
	}

	// second Up is a no-op
	require.NoError(t, m.Up())

	require.NoError(t, m.Steps(-1))
	assert.False(t, tableExists(t, db, "product_tags"))

	require.NoError(t, m.GoTo(2))
	assert.False(t, tableExists(t, db, "products"))
	assert.True(t, tableExists(t, db, "tags"))

	require.NoError(t, m.Down())
	assert.False(t, tableExists(t, db, "categories"))

	require.NoError(t, m.Force(1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(openMemoryDB(t), "mysql", zaptest.NewLogger(t))
	assert.Error(t, err)
}
