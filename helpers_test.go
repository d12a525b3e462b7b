package migrator

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func createTable(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	require.NoError(t, db.Exec(fmt.Sprintf(`CREATE TABLE "%s" (id INTEGER PRIMARY KEY)`, table)).Error)
}

func columnNames(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()
	columns, err := db.Migrator().ColumnTypes(table)
	require.NoError(t, err)

	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name())
	}
	return names
}

func appliedIDs(t *testing.T, m *MigrationManager) []int64 {
	t.Helper()
	records, err := m.appliedRecords(context.Background())
	require.NoError(t, err)

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func addColumn(id int64, name, table, column string) *Migration {
	return NewSQLMigration(
		Identifier{ID: id, Name: name},
		fmt.Sprintf(`ALTER TABLE "%s" ADD "%s" text`, table, column),
		fmt.Sprintf(`ALTER TABLE "%s" DROP COLUMN "%s"`, table, column),
	)
}
