package migrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	i, err := ParseIdentifier("1744046505793-add-vat-id-to-address")
	require.NoError(t, err)
	assert.Equal(t, Identifier{ID: 1744046505793, Name: "add-vat-id-to-address"}, i)
	assert.Equal(t, "1744046505793-add-vat-id-to-address", i.String())
	assert.Equal(t, time.Date(2025, time.April, 7, 17, 21, 45, 793000000, time.UTC), i.Time())

	i, err = ParseIdentifier(" 1744878497050_product_variant_desc ")
	require.NoError(t, err)
	assert.Equal(t, int64(1744878497050), i.ID)
	assert.Equal(t, "product_variant_desc", i.Name)

	for _, bad := range []string{"", "add-vat-id", "1744046505793", "-name", "0-zero", "12-"} {
		_, err := ParseIdentifier(bad)
		assert.Error(t, err, bad)
	}
}

func TestIdentifierOrdering(t *testing.T) {
	a := Identifier{ID: 1744046505793, Name: "a"}
	b := Identifier{ID: 1744878497050, Name: "b"}
	assert.True(t, a.LessThan(b))
	assert.False(t, b.LessThan(a))
	assert.False(t, a.LessThan(Identifier{ID: a.ID, Name: "other"}))
}

func TestMustParseIdentifierPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseIdentifier("nope") })
}
