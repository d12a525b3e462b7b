package migrations

import (
	migrator "github.com/Maksumys/storefront-migrator"
	"github.com/Maksumys/storefront-migrator/customfields"
	"gorm.io/gorm"
)

func ProductVariantDesc() *migrator.Migration {
	return migrator.NewMigration(&productVariantDesc{field: customfields.ProductVariantDescription})
}

type productVariantDesc struct {
	field customfields.Field
}

func (m *productVariantDesc) Migrate(tx *gorm.DB) error {
	return tx.Exec(m.field.AddColumnSQL()).Error
}

func (m *productVariantDesc) Downgrade(tx *gorm.DB) error {
	return tx.Exec(m.field.DropColumnSQL()).Error
}

func (m *productVariantDesc) Identifier() migrator.Identifier {
	return migrator.Identifier{ID: 1744878497050, Name: "product-variant-desc"}
}
