package migrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Maksumys/storefront-migrator/internal/models"
	"github.com/Maksumys/storefront-migrator/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppliedRecord - сохраненная запись о примененной миграции.
type AppliedRecord struct {
	ID        int64
	Name      string
	AppliedOn time.Time
}

// NewMigrationsManager создает экземпляр управляющего миграциями (выступает в качестве фасада).
// По умолчанию для PostgreSQL используется advisory-блокировка, для остальных хранилищ - блокировка
// внутри процесса.
func NewMigrationsManager(db *gorm.DB, opts ...ManagerOption) *MigrationManager {
	manager := MigrationManager{
		db:                      db,
		logger:                  zap.NewNop(),
		historyTable:            models.DefaultHistoryTable,
		lockKey:                 defaultLockKey,
		registeredMigrations:    make([]*Migration, 0),
		registeredMigrationsSet: make(map[int64]*Migration),
	}
	for _, opt := range opts {
		opt(&manager)
	}
	if manager.locker == nil {
		manager.locker = defaultLocker(db)
	}

	return &manager
}

type MigrationManager struct {
	db     *gorm.DB
	logger *zap.Logger

	historyTable string
	lockKey      string
	locker       Locker
	metrics      *Metrics

	registeredMigrations    []*Migration
	registeredMigrationsSet map[int64]*Migration
}

// Register сохраняет миграции в память. Если хотя бы одна миграция из набора некорректна или ее
// идентификатор уже зарегистрирован, не регистрируется ни одна миграция набора.
func (m *MigrationManager) Register(migrations ...*Migration) error {
	batch := make(map[int64]*Migration, len(migrations))
	for _, migration := range migrations {
		if err := migration.validate(); err != nil {
			return err
		}

		existing, ok := m.registeredMigrationsSet[migration.id]
		if !ok {
			existing, ok = batch[migration.id]
		}
		if ok {
			return &DuplicateIdentifierError{
				ID:        migration.id,
				Existing:  existing.name,
				Duplicate: migration.name,
			}
		}
		batch[migration.id] = migration
	}

	for _, migration := range migrations {
		m.registeredMigrationsSet[migration.id] = migration
		m.registeredMigrations = append(m.registeredMigrations, migration)
	}
	return nil
}

// Registered возвращает зарегистрированные миграции в порядке возрастания идентификатора.
func (m *MigrationManager) Registered() []*Migration {
	registered := make([]*Migration, len(m.registeredMigrations))
	copy(registered, m.registeredMigrations)
	sort.SliceStable(registered, func(i, j int) bool {
		return registered[i].id < registered[j].id
	})
	return registered
}

// Pending возвращает миграции, которые еще не были применены, в порядке их применения.
func (m *MigrationManager) Pending(ctx context.Context) ([]*Migration, error) {
	applied, err := m.appliedRecords(ctx)
	if err != nil {
		return nil, err
	}
	return ListPending(m.registeredMigrations, applied), nil
}

func (m *MigrationManager) appliedRecords(ctx context.Context) ([]AppliedRecord, error) {
	db := m.db.WithContext(ctx)
	// не было выполнено ни одной миграции
	if !repository.HasMigrationsTable(db, m.historyTable) {
		return nil, nil
	}

	savedMigrations, err := repository.GetMigrationsSorted(db, m.historyTable, repository.OrderASC)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	records := make([]AppliedRecord, 0, len(savedMigrations))
	for i := range savedMigrations {
		records = append(records, AppliedRecord{
			ID:        savedMigrations[i].Id,
			Name:      savedMigrations[i].Name,
			AppliedOn: savedMigrations[i].AppliedOn,
		})
	}
	return records, nil
}

func (m *MigrationManager) findMigration(id int64) (*Migration, bool) {
	migration, ok := m.registeredMigrationsSet[id]
	return migration, ok
}

func (m *MigrationManager) acquireLock(ctx context.Context) (func(), error) {
	release, err := m.locker.Acquire(ctx, m.lockKey)
	if err != nil {
		return nil, fmt.Errorf("acquire migration lock: %w", err)
	}
	m.logger.Debug("Migration lock acquired", zap.String("key", m.lockKey))

	return func() {
		release()
		m.logger.Debug("Migration lock released", zap.String("key", m.lockKey))
	}, nil
}
