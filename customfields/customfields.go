// Package customfields описывает дополнительные поля сущностей магазина и их отображение на колонки БД.
package customfields

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrRequired        = errors.New("value is required")
	ErrPatternMismatch = errors.New("value does not match pattern")
	ErrTooLong         = errors.New("value is too long")
)

type Type string

const (
	TypeString Type = "string"
	TypeText   Type = "text"
)

const defaultStringLength = 255

type LanguageCode string

const (
	LanguageEN LanguageCode = "en"
	LanguagePL LanguageCode = "pl"
)

type LocalizedString struct {
	LanguageCode LanguageCode
	Value        string
}

type Field struct {
	Entity string
	Table  string
	Name   string
	Type   Type
	// Length ограничивает длину строковой колонки, 0 - значение по умолчанию (255).
	Length      int
	Nullable    bool
	Pattern     *regexp.Regexp
	Label       []LocalizedString
	Description []LocalizedString
	UIComponent string
}

// ColumnName возвращает имя колонки поля, например vatId -> customFieldsVatid.
func (f Field) ColumnName() string {
	name := []rune(strings.ToLower(f.Name))
	if len(name) > 0 {
		name[0] = unicode.ToUpper(name[0])
	}
	return "customFields" + string(name)
}

func (f Field) SQLType() string {
	switch f.Type {
	case TypeText:
		return "text"
	default:
		return fmt.Sprintf("character varying(%d)", f.maxLength())
	}
}

func (f Field) AddColumnSQL() string {
	def := fmt.Sprintf(`ALTER TABLE "%s" ADD "%s" %s`, f.Table, f.ColumnName(), f.SQLType())
	if !f.Nullable {
		def += " NOT NULL DEFAULT ''"
	}
	return def
}

func (f Field) DropColumnSQL() string {
	return fmt.Sprintf(`ALTER TABLE "%s" DROP COLUMN "%s"`, f.Table, f.ColumnName())
}

// Validate проверяет значение на уровне приложения. Сама колонка ограничений по шаблону не имеет.
func (f Field) Validate(value *string) error {
	if value == nil {
		if f.Nullable {
			return nil
		}
		return fmt.Errorf("%s.%s: %w", f.Entity, f.Name, ErrRequired)
	}

	if f.Type == TypeString && len([]rune(*value)) > f.maxLength() {
		return fmt.Errorf("%s.%s: %w: max %d characters", f.Entity, f.Name, ErrTooLong, f.maxLength())
	}

	if f.Pattern != nil && !f.Pattern.MatchString(*value) {
		return fmt.Errorf("%s.%s: %w %s", f.Entity, f.Name, ErrPatternMismatch, f.Pattern)
	}
	return nil
}

// LabelFor возвращает подпись на заданном языке, при отсутствии - на английском.
func (f Field) LabelFor(code LanguageCode) string {
	return localized(f.Label, code)
}

func (f Field) DescriptionFor(code LanguageCode) string {
	return localized(f.Description, code)
}

func (f Field) maxLength() int {
	if f.Length > 0 {
		return f.Length
	}
	return defaultStringLength
}

func localized(values []LocalizedString, code LanguageCode) string {
	fallback := ""
	for _, v := range values {
		if v.LanguageCode == code {
			return v.Value
		}
		if v.LanguageCode == LanguageEN {
			fallback = v.Value
		}
	}
	return fallback
}
