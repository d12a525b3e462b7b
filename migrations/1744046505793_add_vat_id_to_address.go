package migrations

import (
	migrator "github.com/Maksumys/storefront-migrator"
	"github.com/Maksumys/storefront-migrator/customfields"
)

func AddVatIDToAddress() *migrator.Migration {
	return addCustomField("1744046505793-add-vat-id-to-address", customfields.AddressVatID)
}
