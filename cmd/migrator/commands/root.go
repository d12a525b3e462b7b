package commands

import (
	"context"
	"fmt"

	migrator "github.com/Maksumys/storefront-migrator"
	"github.com/Maksumys/storefront-migrator/internal/config"
	"github.com/Maksumys/storefront-migrator/internal/database"
	"github.com/Maksumys/storefront-migrator/internal/logging"
	"github.com/Maksumys/storefront-migrator/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFiles     []string
	failFastLock bool
	metricsFile  string

	rootCmd = &cobra.Command{
		Use:           "migrator",
		Short:         "Storefront schema migrations",
		Long:          `Applies and reverts the storefront's versioned schema migrations against its PostgreSQL database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and runs it.
func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")
	rootCmd.PersistentFlags().BoolVar(&failFastLock, "fail-fast-lock", false, "fail instead of waiting when another runner holds the migration lock")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")

	rootCmd.AddCommand(migrateCmd, revertCmd, pendingCmd, statusCmd, checkCmd)
}

// app - корень композиции, общий для всех подкоманд.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	manager  *migrator.MigrationManager
	registry *prometheus.Registry
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.IsDev(), cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	var lockOpts []migrator.PostgresLockOption
	if useTryLock(failFastLock, cfg.Database) {
		lockOpts = append(lockOpts, migrator.WithTryLock())
	}

	registry := prometheus.NewRegistry()
	manager := migrator.NewMigrationsManager(db,
		migrator.WithLogger(logger.Named("migrator")),
		migrator.WithHistoryTable(cfg.Database.HistoryTable),
		migrator.WithLocker(migrator.NewPostgresLock(db, lockOpts...)),
		migrator.WithMetrics(migrator.NewMetrics(registry)),
	)
	if err := migrations.Register(manager); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("register migrations: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		manager:  manager,
		registry: registry,
	}, nil
}

// useTryLock: флаг командной строки включает режим без ожидания, но не может выключить его,
// если он задан в окружении.
func useTryLock(flag bool, cfg config.DatabaseConfig) bool {
	return flag || cfg.FailFastLock
}

func (a *app) Close() {
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, a.registry); err != nil {
			a.logger.Warn("Failed to write metrics file", zap.String("path", metricsFile), zap.Error(err))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// withApp создает app на время выполнения одной команды.
func withApp(run func(ctx context.Context, cmd *cobra.Command, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		return run(ctx, cmd, a)
	}
}
