package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"sync"

	"gorm.io/gorm"
)

const defaultLockKey = "storefront_migrator"

// Locker обеспечивает взаимное исключение запусков миграций между процессами.
// Возвращаемая функция release должна быть вызвана для освобождения блокировки.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type PostgresLockOption func(*PostgresLock)

// WithTryLock переключает блокировку в режим без ожидания: если блокировка уже удерживается другим
// процессом, Acquire сразу возвращает ErrLockHeld.
func WithTryLock() PostgresLockOption {
	return func(l *PostgresLock) {
		l.try = true
	}
}

// PostgresLock реализует Locker через сессионные advisory-блокировки PostgreSQL. Блокировка удерживается
// на выделенном соединении до вызова release.
type PostgresLock struct {
	db  *gorm.DB
	try bool
}

func NewPostgresLock(db *gorm.DB, opts ...PostgresLockOption) *PostgresLock {
	l := &PostgresLock{db: db}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *PostgresLock) Acquire(ctx context.Context, key string) (func(), error) {
	lockID := hashLockKey(key)

	sqlDB, err := l.db.DB()
	if err != nil {
		return nil, &ConnectionError{Op: "get sql.DB", Err: err}
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, &ConnectionError{Op: "reserve lock connection", Err: err}
	}

	if l.try {
		var acquired bool
		err = conn.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("pg_try_advisory_lock(%d): %w", lockID, err)
		}
		if !acquired {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: key %q", ErrLockHeld, key)
		}
	} else if _, err = conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pg_advisory_lock(%d): %w", lockID, err)
	}

	return releaseAdvisoryLock(conn, lockID), nil
}

func releaseAdvisoryLock(conn *sql.Conn, lockID int64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
			_ = conn.Close()
		})
	}
}

// LocalLock реализует Locker на мьютексе внутри процесса. Подходит для хранилищ с единственным
// писателем, например SQLite.
type LocalLock struct {
	mu sync.Mutex
}

func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

func (l *LocalLock) Acquire(ctx context.Context, _ string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("acquire local lock: %w", err)
	}

	l.mu.Lock()
	var once sync.Once
	return func() { once.Do(l.mu.Unlock) }, nil
}

func defaultLocker(db *gorm.DB) Locker {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return NewPostgresLock(db)
	}
	return NewLocalLock()
}

func hashLockKey(key string) int64 {
	h := fnv.New64a()
	// fnv.Write always writes with no error
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF)
}
