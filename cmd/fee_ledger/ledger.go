package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/core/services"
	"github.com/SscSPs/fee_ledger/internal/notification"
	"github.com/SscSPs/fee_ledger/internal/platform/config"
	"github.com/SscSPs/fee_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/fee_ledger/internal/repositories/memory"
	"github.com/SscSPs/fee_ledger/pkg/database"
)

// ledger is the wired application shared by every subcommand.
type ledger struct {
	services   *portssvc.ServiceContainer
	dispatcher *notification.Dispatcher
	closers    []func()
}

// openLedger connects the configured store, builds the notifier chain and the services.
// Callers must call close.
func openLedger(ctx context.Context, cmd *cobra.Command) (*ledger, error) {
	l := &ledger{}

	repos, students, err := l.openStore(ctx, cmd)
	if err != nil {
		l.close(ctx)
		return nil, err
	}

	var sink portssvc.Notifier = notification.LogNotifier{}
	if cfg.NotifyWebhookURL != "" {
		sink = notification.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.NotifyTimeout)
		logger.Info("Delivering ledger events to webhook", slog.String("url", cfg.NotifyWebhookURL))
	}
	l.dispatcher = notification.NewDispatcher(sink, cfg.NotifyQueueSize,
		notification.WithDeliveryTimeout(cfg.NotifyTimeout),
		notification.WithDispatcherLogger(logger.With(slog.String("component", "notifier"))),
	)
	l.dispatcher.Start()

	l.services = services.NewServiceContainer(cfg, repos, students, l.dispatcher)
	return l, nil
}

func (l *ledger) openStore(ctx context.Context, cmd *cobra.Command) (portsrepo.RepositoryProvider, portssvc.StudentDirectory, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		refs, _ := cmd.Flags().GetStringSlice("seed-students")
		seeded := make([]domain.Student, 0, len(refs))
		for _, ref := range refs {
			seeded = append(seeded, domain.Student{StudentRef: ref, Status: domain.StudentActive})
		}
		logger.Warn("Using in-memory ledger store; data is lost on exit and every write takes one ledger-wide lock",
			slog.Int("seeded_students", len(seeded)))
		return memory.NewRepositoryProvider(memory.NewStore()), memory.NewStudentDirectory(seeded...), nil
	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		l.closers = append(l.closers, func() { database.ClosePgxPool(dbPool) })
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), pgsql.NewStudentDirectory(dbPool), nil
	}
}

// close drains queued notifications, then releases the store.
func (l *ledger) close(ctx context.Context) {
	if l.dispatcher != nil {
		if err := l.dispatcher.Close(ctx); err != nil {
			logger.Warn("Notifications left undelivered", slog.String("error", err.Error()))
		}
	}
	for i := len(l.closers) - 1; i >= 0; i-- {
		l.closers[i]()
	}
}

// migrateIfPostgres applies pending migrations when the ledger lives in Postgres.
func migrateIfPostgres() error {
	if cfg.StoreBackend != config.StorePostgres {
		return nil
	}
	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}
