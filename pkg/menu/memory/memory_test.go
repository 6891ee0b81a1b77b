package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/pkg/validation"
)

func TestCatalog(t *testing.T) {
	c := New()

	tea, err := c.Add("Tea", decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, 1, tea.ID)
	assert.True(t, tea.Price.Equal(decimal.NewFromInt(20)))

	coffee, err := c.Add("  Coffee ", decimal.RequireFromString("35.5"))
	require.NoError(t, err)
	assert.Equal(t, 2, coffee.ID)
	assert.Equal(t, "Coffee", coffee.Name)

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Tea", got.Name)

	_, ok = c.Get(42)
	assert.False(t, ok)

	price, ok := c.Price(2)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("35.5")))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, []int{1, 2}, []int{list[0].ID, list[1].ID})
}

func TestCatalogRejectsInvalidItems(t *testing.T) {
	c := New()

	_, err := c.Add("", decimal.NewFromInt(10))
	assert.ErrorAs(t, err, new(validation.ValidationError))
	assert.Equal(t, 0, c.Len())

	_, err = c.Add("   ", decimal.NewFromInt(10))
	assert.ErrorAs(t, err, new(validation.ValidationError))

	_, err = c.Add("Coffee", decimal.Zero)
	assert.ErrorAs(t, err, new(validation.ValidationError))
	assert.Equal(t, 0, c.Len())

	// ids are not consumed by rejected items
	item, err := c.Add("Coffee", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)
}

func TestCatalogListIsSnapshot(t *testing.T) {
	c := New()
	_, err := c.Add("Tea", decimal.NewFromInt(20))
	require.NoError(t, err)

	list := c.List()
	list[0].Name = "Changed"
	_, err = c.Add("Cake", decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.Len(t, list, 1)
	got, _ := c.Get(1)
	assert.Equal(t, "Tea", got.Name)
}

func TestCatalogIDsIncrease(t *testing.T) {
	c := New()
	prev := 0
	for _, name := range []string{"Tea", "Coffee", "Cake", "Soup", "Bread"} {
		item, err := c.Add(name, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.Greater(t, item.ID, prev)
		prev = item.ID
	}
	assert.Equal(t, 5, prev)
}
