package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add product sku", "add_product_sku"},
		{"Add-Product-SKU", "add_product_sku"},
		{"add__tag__colour", "add_tag_colour"},
		{"add_-_tag colour", "add_tag_colour"},
		{"_drop_legacy_", "drop_legacy"},
		{"   spaces   ", "spaces"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	root := t.TempDir()
	for _, driver := range Drivers {
		dir := filepath.Join(root, driver)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_create_product_tags.up.sql"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_create_product_tags.down.sql"), nil, 0o644))
	}

	files, err := CreateMigration(root, "add product sku", "Adds a stock keeping unit")
	require.NoError(t, err)
	require.Len(t, files, len(Drivers))

	for _, mf := range files {
		assert.Equal(t, "000005", mf.Version)
		assert.Equal(t, filepath.Join(root, mf.Driver, "000005_add_product_sku.up.sql"), mf.UpPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "-- Migration: add product sku ("+mf.Driver+")")
		assert.Contains(t, string(up), "-- Adds a stock keeping unit")

		_, err = os.Stat(mf.DownPath)
		assert.NoError(t, err)
	}
}

func TestCreateMigration_EmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestCreateMigration_FirstInEmptyDir(t *testing.T) {
	files, err := CreateMigration(t.TempDir(), "init", "")
	require.NoError(t, err)
	assert.Equal(t, "000001", files[0].Version)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"pg/000010_ten.up.sql":   {},
		"pg/000010_ten.down.sql": {},
		"pg/000002_two.up.sql":   {},
		"pg/000002_two.down.sql": {},
		"pg/README.md":           {},
	}

	names, err := ListMigrations(fsys, "pg")
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_two", "000010_ten"}, names)

	names, err = ListMigrations(fsys, "missing")
	require.NoError(t, err)
	assert.Empty(t, names)
}
