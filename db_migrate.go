package migrator

import (
	"context"
	"fmt"
	"time"

	"github.com/Maksumys/storefront-migrator/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplyAll применяет все еще не примененные миграции строго в порядке возрастания идентификатора. На первом
// шаге захватывается блокировка запуска и создается системная таблица, затем каждая миграция выполняется и
// записывается в таблицу примененных миграций.
//
// При ошибке выполнение останавливается, последующие миграции не запускаются, ранее примененные миграции
// не отменяются. Возвращается MigrationExecutionError с идентификатором упавшей миграции.
func (m *MigrationManager) ApplyAll(ctx context.Context) (int, error) {
	m.logger.Info("Preparing migrations execution")

	release, err := m.acquireLock(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	err = m.initSystemTables(ctx)
	if err != nil {
		return 0, err
	}

	savedMigrations, err := m.appliedRecords(ctx)
	if err != nil {
		return 0, err
	}

	plan := newMigrationsPlan(ListPending(m.registeredMigrations, savedMigrations))
	if plan.IsEmpty() {
		m.logger.Info("No pending migrations, schema is up to date")
		return 0, nil
	}
	m.logger.Info("Pending migrations found", zap.Int("count", plan.Len()))

	applied := 0
	for !plan.IsEmpty() {
		migration := plan.PopFirst()

		err = m.executeMigration(ctx, migration, DirectionUp)
		if err != nil {
			return applied, err
		}
		applied++
	}

	m.logger.Info("Migrations completed, schema is up to date", zap.Int("applied", applied))
	return applied, nil
}

func (m *MigrationManager) initSystemTables(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	if repository.HasMigrationsTable(db, m.historyTable) {
		return nil
	}

	m.logger.Info("Table of applied migrations not found, creating", zap.String("table", m.historyTable))
	if err := repository.CreateMigrationsTable(db, m.historyTable); err != nil {
		return fmt.Errorf("create %s table: %w", m.historyTable, err)
	}
	return nil
}

// executeMigration выполняет изменение схемы в заданном направлении и сохраняет состояние. Для транзакционной
// миграции изменение и запись выполняются в одной транзакции.
func (m *MigrationManager) executeMigration(ctx context.Context, migration *Migration, direction Direction) error {
	logger := m.logger.With(
		zap.Int64("migration_id", migration.id),
		zap.String("name", migration.name),
		zap.String("direction", string(direction)),
	)
	logger.Info("Executing migration")

	step := func(tx *gorm.DB) error {
		if err := migration.run(tx, direction); err != nil {
			return err
		}
		return m.saveState(tx, migration, direction)
	}

	started := time.Now()
	var err error
	if migration.transaction {
		err = m.db.WithContext(ctx).Transaction(step)
	} else {
		err = step(m.db.WithContext(ctx))
	}
	m.metrics.observe(direction, started, err)

	if err != nil {
		logger.Error("Migration failed", zap.Error(err))
		return &MigrationExecutionError{
			ID:        migration.id,
			Name:      migration.name,
			Direction: direction,
			Err:       err,
		}
	}

	logger.Info("Migration complete", zap.Duration("took", time.Since(started)))
	return nil
}

func (m *MigrationManager) saveState(tx *gorm.DB, migration *Migration, direction Direction) error {
	switch direction {
	case DirectionUp:
		_, err := repository.SaveMigration(tx, m.historyTable, repository.SaveMigrationRequest{
			Id:   migration.id,
			Name: migration.name,
		})
		if err != nil {
			return fmt.Errorf("record applied migration: %w", err)
		}
	case DirectionDown:
		if err := repository.DeleteMigration(tx, m.historyTable, migration.id); err != nil {
			return fmt.Errorf("delete applied migration record: %w", err)
		}
	}
	return nil
}
