package migrator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegister_RejectsDuplicateIdentifier(t *testing.T) {
	manager := NewMigrationsManager(newTestDB(t))
	require.NoError(t, manager.Register(addColumn(1, "one", "t", "a")))

	err := manager.Register(addColumn(2, "two", "t", "b"), addColumn(1, "again", "t", "c"))
	var dup *DuplicateIdentifierError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(1), dup.ID)
	assert.Equal(t, "one", dup.Existing)
	assert.Equal(t, "again", dup.Duplicate)

	// nothing from the rejected batch is registered
	assert.Equal(t, []int64{1}, ids(manager.Registered()))
}

func TestRegister_RejectsDuplicateWithinBatch(t *testing.T) {
	manager := NewMigrationsManager(newTestDB(t))

	err := manager.Register(addColumn(5, "a", "t", "a"), addColumn(5, "b", "t", "b"))
	var dup *DuplicateIdentifierError
	require.ErrorAs(t, err, &dup)
	assert.Empty(t, manager.Registered())
}

func TestRegister_RejectsInvalidMigration(t *testing.T) {
	manager := NewMigrationsManager(newTestDB(t))
	noop := func(tx *gorm.DB) error { return nil }

	cases := map[string]*Migration{
		"no up":        NewSQLMigration(Identifier{ID: 1, Name: "x"}, "", "DROP TABLE t"),
		"no down":      NewSQLMigration(Identifier{ID: 1, Name: "x"}, "CREATE TABLE t (id int)", ""),
		"zero id":      NewSQLMigration(Identifier{ID: 0, Name: "x"}, "SELECT 1", "SELECT 1"),
		"empty name":   NewSQLMigration(Identifier{ID: 1}, "SELECT 1", "SELECT 1"),
		"up ambiguous": {id: 1, name: "x", up: "SELECT 1", upF: noop, down: "SELECT 1"},
	}
	for name, migration := range cases {
		t.Run(name, func(t *testing.T) {
			err := manager.Register(migration)
			assert.True(t, errors.Is(err, ErrInvalidMigration), "got %v", err)
		})
	}
	assert.Empty(t, manager.Registered())
}

func TestRegistered_SortedByIdentifier(t *testing.T) {
	manager := NewMigrationsManager(newTestDB(t))
	require.NoError(t, manager.Register(addColumn(3, "c", "t", "c"), addColumn(1, "a", "t", "a"), addColumn(2, "b", "t", "b")))
	assert.Equal(t, []int64{1, 2, 3}, ids(manager.Registered()))
}

func TestNewMigrationsManager_DefaultLocker(t *testing.T) {
	manager := NewMigrationsManager(newTestDB(t))
	assert.IsType(t, &LocalLock{}, manager.locker)
	assert.Equal(t, "migrations", manager.historyTable)
}
