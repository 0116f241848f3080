package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/migration"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const defaultSourceDir = "internal/infrastructure/migration/sql"

// sqlDriverNames maps config drivers to database/sql driver names
var sqlDriverNames = map[string]string{
	config.DriverPostgres: "postgres",
	config.DriverSQLite:   "sqlite3",
}

type contextKey struct{}

type env struct {
	log *zap.Logger
	cfg *config.Config
}

func main() {
	cmd := &cli.Command{
		Name:  "migrate",
		Usage: "apply and author the shop database migrations",
		Description: "Migrations are embedded in the binary, one set per driver. " +
			"The driver and DSN come from the same configuration as the server (config.toml, .env, SHOP_* variables).",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: withMigrator(func(_ *cli.Command, _ *env, m *migration.Migrator) error {
					return m.Up()
				}),
			},
			{
				Name:  "down",
				Usage: "roll back all migrations",
				Action: withMigrator(func(_ *cli.Command, _ *env, m *migration.Migrator) error {
					return m.Down()
				}),
			},
			{
				Name:      "steps",
				Usage:     "apply n migrations; negative n rolls back (write `steps -- -1`)",
				ArgsUsage: "N",
				Action: withMigrator(func(cmd *cli.Command, e *env, m *migration.Migrator) error {
					n, err := strconv.Atoi(cmd.Args().First())
					if err != nil {
						return fmt.Errorf("invalid step count %q", cmd.Args().First())
					}
					return m.Steps(n)
				}),
			},
			{
				Name:      "goto",
				Usage:     "migrate up or down to a version",
				ArgsUsage: "VERSION",
				Action: withMigrator(func(cmd *cli.Command, e *env, m *migration.Migrator) error {
					v, err := strconv.ParseUint(cmd.Args().First(), 10, 32)
					if err != nil {
						return fmt.Errorf("invalid version %q", cmd.Args().First())
					}
					return m.GoTo(uint(v))
				}),
			},
			{
				Name:  "version",
				Usage: "print the applied version",
				Action: withMigrator(func(cmd *cli.Command, e *env, m *migration.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					if v == 0 {
						fmt.Fprintln(cmd.Root().Writer, "no migrations applied")
						return nil
					}
					fmt.Fprintf(cmd.Root().Writer, "version %d (dirty: %t)\n", v, dirty)
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "set the version without running migrations, clearing the dirty flag",
				ArgsUsage: "VERSION",
				Action: withMigrator(func(cmd *cli.Command, e *env, m *migration.Migrator) error {
					v, err := strconv.Atoi(cmd.Args().First())
					if err != nil {
						return fmt.Errorf("invalid version %q", cmd.Args().First())
					}
					e.log.Warn("Forcing migration version", zap.Int("version", v))
					return m.Force(v)
				}),
			},
			{
				Name:  "drop",
				Usage: "drop every table in the database",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "confirm", Usage: "required; there is no undo"},
				},
				Action: withMigrator(func(cmd *cli.Command, e *env, m *migration.Migrator) error {
					if !cmd.Bool("confirm") {
						return errors.New("drop cancelled, pass --confirm")
					}
					return m.Drop()
				}),
			},
			{
				Name:      "create",
				Usage:     "write the next up/down pair for every driver",
				ArgsUsage: "NAME [DESCRIPTION]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: defaultSourceDir, Usage: "migration source root"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return errors.New("migration name required")
					}
					files, err := migration.CreateMigration(cmd.String("dir"), cmd.Args().Get(0), cmd.Args().Get(1))
					if err != nil {
						return err
					}
					log := envFrom(ctx).log
					for _, f := range files {
						log.Info("Migration created",
							zap.String("driver", f.Driver),
							zap.String("version", f.Version),
							zap.String("up_file", f.UpPath),
							zap.String("down_file", f.DownPath),
						)
					}
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list the migrations embedded for the configured driver",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e := envFrom(ctx)
					names, err := migration.EmbeddedMigrations(e.cfg.Database.Driver)
					if err != nil {
						return err
					}
					for _, name := range names {
						fmt.Fprintln(cmd.Root().Writer, name)
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	log, err := logger.New(&logger.Config{
		Level:      cmd.String("log-level"),
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return ctx, fmt.Errorf("failed to load configuration: %w", err)
	}
	return context.WithValue(ctx, contextKey{}, &env{log: log, cfg: cfg}), nil
}

func envFrom(ctx context.Context) *env {
	return ctx.Value(contextKey{}).(*env)
}

// withMigrator opens the configured database, runs fn and closes both
func withMigrator(fn func(cmd *cli.Command, e *env, m *migration.Migrator) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		e := envFrom(ctx)
		defer func() { _ = e.log.Sync() }()

		driver := e.cfg.Database.Driver
		db, err := sql.Open(sqlDriverNames[driver], e.cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}

		m, err := migration.New(db, driver, e.log)
		if err != nil {
			_ = db.Close()
			return err
		}
		// closes db as well
		defer func() { _ = m.Close() }()

		e.log.Info("Running migration command", zap.String("command", cmd.Name), zap.String("driver", driver))
		return fn(cmd, e, m)
	}
}
