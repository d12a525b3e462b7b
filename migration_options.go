package migrator

type MigrationOption func(*Migration)

// WithTransaction позволяет выполнить текущую миграцию внутри транзакции. По умолчанию равен true.
// Запись о применении миграции сохраняется в той же транзакции, что и изменение схемы.
func WithTransaction(useTransaction bool) MigrationOption {
	return func(m *Migration) {
		m.transaction = useTransaction
	}
}
