package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	migrator "github.com/Maksumys/storefront-migrator"
	"github.com/Maksumys/storefront-migrator/internal/config"
	"github.com/Maksumys/storefront-migrator/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStoreDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, table := range []string{"address", "product_variant"} {
		require.NoError(t, db.Exec(`CREATE TABLE "`+table+`" (id INTEGER PRIMARY KEY)`).Error)
	}
	return db
}

func TestCheckSchema(t *testing.T) {
	ctx := context.Background()
	manager := migrator.NewMigrationsManager(newStoreDB(t))
	require.NoError(t, migrations.Register(manager))

	var out bytes.Buffer
	err := checkSchema(ctx, &out, manager)
	assert.ErrorIs(t, err, errPendingMigrations)
	assert.Empty(t, out.String())

	_, err = manager.ApplyAll(ctx)
	require.NoError(t, err)

	require.NoError(t, checkSchema(ctx, &out, manager))
	assert.Equal(t, "Schema is up to date\n", out.String())

	_, err = manager.RevertLast(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, checkSchema(ctx, &out, manager), errPendingMigrations)
}

type failingChecker struct{ err error }

func (c failingChecker) CheckFulfillment(context.Context) (bool, error) { return false, c.err }

func TestCheckSchema_StoreError(t *testing.T) {
	storeErr := errors.New("connection reset")

	err := checkSchema(context.Background(), &bytes.Buffer{}, failingChecker{err: storeErr})
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, errPendingMigrations)
}

func TestUseTryLock(t *testing.T) {
	cases := []struct {
		name string
		flag bool
		env  bool
		want bool
	}{
		{name: "default waits", want: false},
		{name: "flag", flag: true, want: true},
		{name: "environment", env: true, want: true},
		{name: "both", flag: true, env: true, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, useTryLock(tc.flag, config.DatabaseConfig{FailFastLock: tc.env}))
		})
	}
}
