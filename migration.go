package migrator

import (
	"fmt"

	"gorm.io/gorm"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Migrator описывает миграцию, реализованную в коде. Downgrade должен в точности отменять действие Migrate.
type Migrator interface {
	Migrate(tx *gorm.DB) error
	Downgrade(tx *gorm.DB) error
	Identifier() Identifier
}

// NewSQLMigration создает миграцию из пары SQL выражений: up выполняется при применении, down при отмене.
func NewSQLMigration(identifier Identifier, up, down string, opts ...MigrationOption) *Migration {
	migration := &Migration{
		transaction: true,
		id:          identifier.ID,
		name:        identifier.Name,
		up:          up,
		down:        down,
	}
	for _, opt := range opts {
		opt(migration)
	}
	return migration
}

// NewMigration создает миграцию из реализации Migrator.
func NewMigration(migrator Migrator, opts ...MigrationOption) *Migration {
	identifier := migrator.Identifier()
	migration := &Migration{
		transaction: true,
		id:          identifier.ID,
		name:        identifier.Name,
		upF:         migrator.Migrate,
		downF:       migrator.Downgrade,
	}
	for _, opt := range opts {
		opt(migration)
	}
	return migration
}

type Migration struct {
	// настраиваемые параметры миграции
	transaction bool

	// свойства миграции
	id   int64
	name string

	up   string
	down string

	upF   func(tx *gorm.DB) error
	downF func(tx *gorm.DB) error
}

func (m *Migration) ID() int64 {
	return m.id
}

func (m *Migration) Name() string {
	return m.name
}

func (m *Migration) Identifier() Identifier {
	return Identifier{ID: m.id, Name: m.name}
}

func (m *Migration) String() string {
	return m.Identifier().String()
}

func (m *Migration) validate() error {
	if m.id <= 0 {
		return fmt.Errorf("%w: %s has non-positive identifier", ErrInvalidMigration, m)
	}
	if m.name == "" {
		return fmt.Errorf("%w: %d has empty name", ErrInvalidMigration, m.id)
	}
	if len(m.up) == 0 && m.upF == nil || len(m.up) > 0 && m.upF != nil {
		return fmt.Errorf("%w: %s must define exactly one of up and upF", ErrInvalidMigration, m)
	}
	if len(m.down) == 0 && m.downF == nil || len(m.down) > 0 && m.downF != nil {
		return fmt.Errorf("%w: %s must define exactly one of down and downF", ErrInvalidMigration, m)
	}
	return nil
}

func (m *Migration) run(tx *gorm.DB, direction Direction) error {
	switch direction {
	case DirectionUp:
		if len(m.up) > 0 {
			return tx.Exec(m.up).Error
		}
		return m.upF(tx)
	case DirectionDown:
		if len(m.down) > 0 {
			return tx.Exec(m.down).Error
		}
		return m.downF(tx)
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
}
