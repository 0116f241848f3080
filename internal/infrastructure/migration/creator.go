package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/gosimple/slug"
	"github.com/shop/backend/internal/infrastructure/config"
)

// Drivers lists the engines every migration must be written for
var Drivers = []string{config.DriverPostgres, config.DriverSQLite}

const migrationUpTemplate = `-- Migration: {{.Name}} ({{.Driver}})
-- Created: {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`

const migrationDownTemplate = `-- Rollback: {{.Name}} ({{.Driver}})
-- Created: {{.Timestamp}}

`

var migrationFileRE = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// MigrationFile is one up/down pair for one driver
type MigrationFile struct {
	Version     string
	Name        string
	Driver      string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration creates the next sequential up/down pair under
// rootDir/<driver> for every supported driver. The sets stay in lockstep so
// a version means the same schema on both engines.
func CreateMigration(rootDir, name, description string) ([]MigrationFile, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	next := uint64(1)
	for _, driver := range Drivers {
		latest, err := latestVersion(os.DirFS(rootDir), driver)
		if err != nil {
			return nil, err
		}
		next = max(next, latest+1)
	}

	version := fmt.Sprintf("%06d", next)
	timestamp := time.Now().UTC().Format(time.RFC3339)

	created := make([]MigrationFile, 0, len(Drivers))
	for _, driver := range Drivers {
		dir := filepath.Join(rootDir, driver)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create migrations directory: %w", err)
		}
		fileBase := version + "_" + base
		mf := MigrationFile{
			Version:     version,
			Name:        name,
			Driver:      driver,
			Description: description,
			Timestamp:   timestamp,
			UpPath:      filepath.Join(dir, fileBase+".up.sql"),
			DownPath:    filepath.Join(dir, fileBase+".down.sql"),
		}
		if err := createMigrationFile(mf.UpPath, migrationUpTemplate, mf); err != nil {
			return nil, fmt.Errorf("failed to create up migration: %w", err)
		}
		if err := createMigrationFile(mf.DownPath, migrationDownTemplate, mf); err != nil {
			_ = os.Remove(mf.UpPath)
			return nil, fmt.Errorf("failed to create down migration: %w", err)
		}
		created = append(created, mf)
	}
	return created, nil
}

func createMigrationFile(path, tmplContent string, data MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

var underscoreRunRE = regexp.MustCompile(`_+`)

// sanitizeName turns a free-form name into a snake_case file name part
func sanitizeName(name string) string {
	snake := strings.ReplaceAll(slug.Make(name), "-", "_")
	return strings.Trim(underscoreRunRE.ReplaceAllString(snake, "_"), "_")
}

func latestVersion(fsys fs.FS, driver string) (uint64, error) {
	names, err := ListMigrations(fsys, driver)
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, nil
	}
	m := migrationFileRE.FindStringSubmatch(names[len(names)-1] + ".up.sql")
	return strconv.ParseUint(m[1], 10, 64)
}

// ListMigrations returns the base names (without .up.sql) of the migrations
// in fsys/dir, in version order. A missing dir yields an empty list.
func ListMigrations(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	type item struct {
		version uint64
		name    string
	}
	items := make([]item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := migrationFileRE.FindStringSubmatch(entry.Name())
		if m == nil || m[3] != "up" {
			continue
		}
		v, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		items = append(items, item{version: v, name: m[1] + "_" + m[2]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].version < items[j].version })

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.name
	}
	return names, nil
}

// EmbeddedMigrations lists the migrations compiled into the binary for driver
func EmbeddedMigrations(driver string) ([]string, error) {
	return ListMigrations(migrationsFS, SQLDir+"/"+driver)
}
