package customfields

import "regexp"

// AddressVatID хранит польский NIP из 10 цифр.
var AddressVatID = Field{
	Entity:   "Address",
	Table:    "address",
	Name:     "vatId",
	Type:     TypeString,
	Nullable: true,
	Pattern:  regexp.MustCompile(`^[0-9]{10}$`),
	Label: []LocalizedString{
		{LanguageCode: LanguageEN, Value: "VAT ID"},
		{LanguageCode: LanguagePL, Value: "NIP"},
	},
	Description: []LocalizedString{
		{LanguageCode: LanguageEN, Value: "VAT Identification Number"},
		{LanguageCode: LanguagePL, Value: "Numer Identyfikacji Podatkowej"},
	},
	UIComponent: "text-form-input",
}

var ProductVariantDescription = Field{
	Entity:   "ProductVariant",
	Table:    "product_variant",
	Name:     "description",
	Type:     TypeText,
	Nullable: true,
	Label: []LocalizedString{
		{LanguageCode: LanguageEN, Value: "Description"},
		{LanguageCode: LanguagePL, Value: "Opis"},
	},
	Description: []LocalizedString{
		{LanguageCode: LanguageEN, Value: "Detailed description of the product variant"},
		{LanguageCode: LanguagePL, Value: "Szczegółowy opis wariantu produktu"},
	},
	UIComponent: "rich-text-form-input",
}

// Definitions группирует поля по сущностям.
func Definitions() map[string][]Field {
	return map[string][]Field{
		AddressVatID.Entity:              {AddressVatID},
		ProductVariantDescription.Entity: {ProductVariantDescription},
	}
}
