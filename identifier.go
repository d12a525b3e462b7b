package migrator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var identifierRe = regexp.MustCompile(`^(?P<id>\d+)[-_](?P<name>[A-Za-z0-9][A-Za-z0-9_-]*)$`)

// Identifier идентифицирует миграцию: числовая часть (миллисекунды с начала эпохи на момент создания миграции)
// и человекочитаемое имя.
type Identifier struct {
	ID   int64
	Name string
}

func (i Identifier) String() string {
	return strconv.FormatInt(i.ID, 10) + "-" + i.Name
}

// Time возвращает момент создания миграции, из которого был получен идентификатор.
func (i Identifier) Time() time.Time {
	return time.UnixMilli(i.ID).UTC()
}

func (i Identifier) LessThan(identifier Identifier) bool {
	return i.ID < identifier.ID
}

// ParseIdentifier разбирает строку вида "1744046505793-add-vat-id-to-address".
func ParseIdentifier(identifierString string) (Identifier, error) {
	match := identifierRe.FindStringSubmatch(strings.TrimSpace(identifierString))
	if match == nil {
		return Identifier{}, errors.New("identifier parse failed: " + identifierString)
	}

	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Identifier{}, err
	}
	if id <= 0 {
		return Identifier{}, errors.New("identifier must be positive: " + identifierString)
	}

	return Identifier{ID: id, Name: match[2]}, nil
}

func MustParseIdentifier(identifierString string) Identifier {
	i, err := ParseIdentifier(identifierString)
	if err != nil {
		panic(err)
	}
	return i
}
