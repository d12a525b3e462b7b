package migrator

import "go.uber.org/zap"

type ManagerOption func(*MigrationManager)

func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *MigrationManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHistoryTable задает имя таблицы, в которой хранятся записи о примененных миграциях.
func WithHistoryTable(table string) ManagerOption {
	return func(m *MigrationManager) {
		if table != "" {
			m.historyTable = table
		}
	}
}

func WithLocker(locker Locker) ManagerOption {
	return func(m *MigrationManager) {
		m.locker = locker
	}
}

// WithLockKey задает ключ блокировки. Запуски с одинаковым ключом выполняются строго последовательно.
func WithLockKey(key string) ManagerOption {
	return func(m *MigrationManager) {
		if key != "" {
			m.lockKey = key
		}
	}
}

func WithMetrics(metrics *Metrics) ManagerOption {
	return func(m *MigrationManager) {
		m.metrics = metrics
	}
}
