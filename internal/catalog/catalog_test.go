package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidCatalog(t *testing.T) {
	path := writeCatalog(t, `{
		"products": [
			{"id": "water", "name": "Water", "icon": "droplet", "default_max_price_per_1000": "150"},
			{"id": "milk", "name": "Milk", "icon": "bottle", "default_max_price_per_1000": "1200"}
		]
	}`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, ok := c.Get("milk")
	require.True(t, ok)
	assert.Equal(t, "Milk", p.Name)
	assert.True(t, p.DefaultMaxPricePer1000.Equal(decimalFromString(t, "1200")))

	_, ok = c.Get("diesel")
	assert.False(t, ok)
}

func TestAllSortedByID(t *testing.T) {
	path := writeCatalog(t, `{
		"products": [
			{"id": "water", "name": "Water"},
			{"id": "diesel", "name": "Diesel"},
			{"id": "milk", "name": "Milk"}
		]
	}`)

	c, err := Load(path)
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "diesel", all[0].ProductID)
	assert.Equal(t, "milk", all[1].ProductID)
	assert.Equal(t, "water", all[2].ProductID)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeCatalog(t, `{
		"products": [
			{"id": "milk", "name": "Milk"},
			{"id": "milk", "name": "Milk again"}
		]
	}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product id")
}

func TestLoadRejectsEmptyID(t *testing.T) {
	path := writeCatalog(t, `{"products": [{"id": "", "name": "Nameless"}]}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestShippedCatalogParses(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data", "catalog.json"))
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 10)

	for _, id := range []string{"milk", "water", "diesel", "herbicide", "sunflower_oil"} {
		_, ok := c.Get(id)
		assert.True(t, ok, "built-in catalog should include %s", id)
	}
}
