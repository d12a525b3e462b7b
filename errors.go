package migrator

import (
	"errors"
	"fmt"
)

var (
	ErrNoAppliedMigrations = errors.New("no applied migrations to revert")
	ErrInvalidMigration    = errors.New("invalid migration")
	ErrMigrationNotFound   = errors.New("applied migration is not registered")
	ErrLockHeld            = errors.New("migration lock is held by another runner")
)

// ConnectionError сообщает о невозможности установить соединение с хранилищем.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed (%s): %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MigrationExecutionError возвращается, если изменение схемы в одном из направлений завершилось ошибкой.
// Содержит идентификатор миграции и направление, в котором произошел сбой.
type MigrationExecutionError struct {
	ID        int64
	Name      string
	Direction Direction
	Err       error
}

func (e *MigrationExecutionError) Error() string {
	return fmt.Sprintf("migration %d (%s) failed on %s: %v", e.ID, e.Name, e.Direction, e.Err)
}

func (e *MigrationExecutionError) Unwrap() error {
	return e.Err
}

// DuplicateIdentifierError возвращается при регистрации двух миграций с одинаковым идентификатором.
type DuplicateIdentifierError struct {
	ID        int64
	Existing  string
	Duplicate string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf(
		"migration with same identifier twice. Identifier: %d. Registered: %s. Rejected: %s",
		e.ID, e.Existing, e.Duplicate,
	)
}
