package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "shopctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "shopctl",
		Usage: "administration tasks for the shop backend",
		Commands: []*cli.Command{
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for admin.password_hash",
				ArgsUsage: "[PASSWORD]",
				Description: "Reads the password from the first argument or, when absent, " +
					"the first line of standard input.",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "cost", Value: 10, Usage: "bcrypt cost, 4 to 31"},
				},
				Action: hashPassword,
			},
			{
				Name:  "issue-token",
				Usage: "mint an admin access token with the configured JWT secret",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "token subject (default: admin.username)"},
					&cli.DurationFlag{Name: "ttl", Usage: "override jwt.access_token_expiration"},
				},
				Action: issueToken,
			},
			{
				Name:   "reslug",
				Usage:  "assign slugs to products whose slug is blank",
				Action: reslug,
			},
		},
	}
}

func hashPassword(_ context.Context, cmd *cli.Command) error {
	password := cmd.Args().First()
	if password == "" {
		var err error
		if password, err = readLine(cmd.Root().Reader); err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := auth.HashPassword(password, int(cmd.Int("cost")))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, hash)
	return nil
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func issueToken(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	username := cmd.String("username")
	if username == "" {
		username = cfg.Admin.Username
	}
	jwtCfg := cfg.JWT
	if ttl := cmd.Duration("ttl"); ttl > 0 {
		jwtCfg.AccessTokenExpiration = ttl
	}

	token, err := auth.NewJWTService(jwtCfg).GenerateAccessToken(username)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, token.AccessToken)
	fmt.Fprintf(cmd.Root().ErrWriter, "expires at %s\n", token.ExpiresAt.Format(time.RFC3339))
	return nil
}

func reslug(ctx context.Context, _ *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	products := catalogapp.NewProductService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCategoryRepository(db.DB),
		nil,
	)
	updated, err := products.Reslug(ctx)
	log.Info("Reslug finished", zap.Int("updated", updated))
	return err
}
