package cli

import (
	"context"
	"fmt"

	"food-order/config"
	"food-order/db"
	"food-order/services"
	"food-order/store/csvfile"
	"food-order/store/postgres"

	"github.com/rs/zerolog"
)

// openService wires the configured store backend into a services.Service.
// The returned close func releases the backend and is never nil on success.
func openService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*services.Service, func(), error) {
	mode, err := services.ParseSecretMode(cfg.Auth.SecretMode)
	if err != nil {
		return nil, nil, err
	}
	opts := services.Options{SecretMode: mode, Logger: log}
	if cfg.Auth.LoginThrottle {
		opts.Throttle = services.NewLoginThrottle(nil)
	}

	switch cfg.Store.Backend {
	case config.BackendFile:
		accounts, err := csvfile.NewAccountStore(cfg.Store.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		orders, err := csvfile.NewOrderStore(cfg.Store.OrderHistoryFile)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().
			Str("credentials", cfg.Store.CredentialsFile).
			Str("orders", cfg.Store.OrderHistoryFile).
			Msg("using file store")
		return services.New(accounts, orders, opts), func() {}, nil

	case config.BackendPostgres:
		pool, err := db.Open(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := db.ApplyMigrations(ctx, pool, log); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		log.Debug().Str("host", cfg.DB.Host).Str("database", cfg.DB.Database).Msg("using postgres store")
		return services.New(postgres.NewAccountStore(pool), postgres.NewOrderStore(pool), opts), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// withService opens the service for one command run.
func withService(ctx context.Context, opts *RootOptions, fn func(*services.Service) error) error {
	svc, closeFn, err := openService(ctx, opts.cfg, opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer closeFn()
	return fn(svc)
}

// commandError maps a command-interface error to an ExitError, logging the
// unexpected ones.
func commandError(log zerolog.Logger, err error) error {
	if err == nil {
		return nil
	}
	if services.IsNotice(err) {
		return NewExitError(ExitFailure, services.Notice(err))
	}
	log.Error().Err(err).Msg("command failed")
	return WrapExitError(ExitCommandError, services.Notice(err), err)
}
