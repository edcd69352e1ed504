package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
	"github.com/SscSPs/fxdesk/internal/core/services"
	"github.com/SscSPs/fxdesk/internal/platform/config"
	"github.com/SscSPs/fxdesk/internal/platform/logging"
	rediscache "github.com/SscSPs/fxdesk/internal/repositories/cache/redis"
	"github.com/SscSPs/fxdesk/internal/repositories/database/pgsql"
	"github.com/SscSPs/fxdesk/pkg/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, connect))
}

// connector builds the app and returns a cleanup func.
type connector func(ctx context.Context, cfg *config.Config) (*app, func(), error)

func run(ctx context.Context, args []string, stdout, stderr io.Writer, connectFn connector) int {
	inv, err := parseInvocation(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stderr, usage)
			return 0
		}
		fmt.Fprintf(stderr, "fxdesk: %v\n\n%s", err, usage)
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "fxdesk: failed to load config: %v\n", err)
		return 1
	}

	// Logs go to stderr so stdout carries only the JSON result.
	logger := logging.NewLoggerTo(stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger.With(
		slog.String("command", inv.name),
		slog.String("tenant_id", inv.tenantID),
	))

	a, cleanup, err := connectFn(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		return 1
	}
	defer cleanup()

	result, err := inv.exec(ctx, a)
	if err != nil {
		logger.Error("Command failed", slog.String("command", inv.name), slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "fxdesk: %v\n", err)
		return 1
	}
	if err := writeJSON(stdout, result); err != nil {
		logger.Error("Failed to write result", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

// connect wires the Postgres catalog, the optional Redis cache and the quote service.
func connect(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() { database.ClosePgxPool(dbPool) }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	a := &app{}
	repos := pgsql.NewRepositoryProvider(dbPool)
	if cfg.RedisAddr != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// the catalog still works without the cache
			slog.Warn("Rate cache disabled", slog.String("error", err.Error()))
		} else {
			closers = append(closers, func() { _ = client.Close() })
			cache := rediscache.NewCachedRateCatalog(client, repos.RateCatalog, cfg.RateCacheTTL)
			a.rateCache = cache
			repos = portsrepo.RepositoryProvider{
				RateCatalog: cache,
				CashStock:   repos.CashStock,
			}
		}
	}

	a.quote = services.NewServiceContainer(cfg, repos).Quote
	return a, cleanup, nil
}
