// Package migrations - реестр миграций схемы магазина.
package migrations

import (
	migrator "github.com/Maksumys/storefront-migrator"
	"github.com/Maksumys/storefront-migrator/customfields"
)

// All возвращает все известные миграции. Порядок не важен, менеджер сортирует их по идентификатору.
func All() []*migrator.Migration {
	return []*migrator.Migration{
		AddVatIDToAddress(),
		ProductVariantDesc(),
	}
}

// Register регистрирует All в менеджере.
func Register(manager *migrator.MigrationManager) error {
	return manager.Register(All()...)
}

// addCustomField создает миграцию, у которой down удаляет в точности ту колонку, которую добавляет up.
func addCustomField(identifier string, field customfields.Field) *migrator.Migration {
	return migrator.NewSQLMigration(
		migrator.MustParseIdentifier(identifier),
		field.AddColumnSQL(),
		field.DropColumnSQL(),
	)
}
