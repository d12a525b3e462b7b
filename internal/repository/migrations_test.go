package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repository_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrationsTableLifecycle(t *testing.T) {
	db := newTestDB(t)
	const table = "schema_history"

	assert.False(t, HasMigrationsTable(db, table))
	require.NoError(t, CreateMigrationsTable(db, table))
	require.NoError(t, CreateMigrationsTable(db, table))
	assert.True(t, HasMigrationsTable(db, table))

	_, err := GetLastMigration(db, table)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, req := range []SaveMigrationRequest{{Id: 20, Name: "b"}, {Id: 10, Name: "a"}, {Id: 30, Name: "c"}} {
		saved, err := SaveMigration(db, table, req)
		require.NoError(t, err)
		assert.False(t, saved.AppliedOn.IsZero())
	}

	_, err = SaveMigration(db, table, SaveMigrationRequest{Id: 10, Name: "dup"})
	assert.Error(t, err)

	asc, err := GetMigrationsSorted(db, table, OrderASC)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []int64{10, 20, 30}, []int64{asc[0].Id, asc[1].Id, asc[2].Id})
	assert.Equal(t, "a", asc[0].Name)

	desc, err := GetMigrationsSorted(db, table, OrderDESC)
	require.NoError(t, err)
	assert.Equal(t, int64(30), desc[0].Id)

	last, err := GetLastMigration(db, table)
	require.NoError(t, err)
	assert.Equal(t, int64(30), last.Id)

	require.NoError(t, DeleteMigration(db, table, 30))
	assert.ErrorIs(t, DeleteMigration(db, table, 30), ErrNotFound)

	last, err = GetLastMigration(db, table)
	require.NoError(t, err)
	assert.Equal(t, int64(20), last.Id)
}
