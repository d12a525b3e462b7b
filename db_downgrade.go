package migrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maksumys/storefront-migrator/internal/repository"
	"go.uber.org/zap"
)

// RevertLast отменяет одну, последнюю примененную миграцию (с наибольшим идентификатором) и удаляет запись
// о ее применении.
//
// Возвращает ErrNoAppliedMigrations, если отменять нечего, и ErrMigrationNotFound, если последняя примененная
// миграция не зарегистрирована. В обоих случаях схема не изменяется.
func (m *MigrationManager) RevertLast(ctx context.Context) (*Migration, error) {
	m.logger.Info("Preparing downgrade execution")

	release, err := m.acquireLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	db := m.db.WithContext(ctx)
	if !repository.HasMigrationsTable(db, m.historyTable) {
		return nil, ErrNoAppliedMigrations
	}

	last, err := repository.GetLastMigration(db, m.historyTable)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoAppliedMigrations
	}
	if err != nil {
		return nil, fmt.Errorf("read last applied migration: %w", err)
	}

	migration, ok := m.findMigration(last.Id)
	if !ok {
		m.logger.Error("Last applied migration is not registered",
			zap.Int64("migration_id", last.Id), zap.String("name", last.Name))
		return nil, fmt.Errorf("%w: %d (%s)", ErrMigrationNotFound, last.Id, last.Name)
	}

	err = m.executeMigration(ctx, migration, DirectionDown)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Downgrade completed", zap.Int64("migration_id", migration.id))
	return migration, nil
}
