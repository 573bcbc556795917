package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
)

var (
	rice = catalog.Product{
		ID:   "basmati-rice",
		Name: "Basmati Rice",
		Prices: map[catalog.Size]decimal.Decimal{
			catalog.Size1kg:  decimal.NewFromInt(250),
			catalog.Size500g: decimal.NewFromInt(140),
		},
	}
	turmeric = catalog.Product{
		ID:   "turmeric-powder",
		Name: "Turmeric Powder",
		Prices: map[catalog.Size]decimal.Decimal{
			catalog.Size250g: decimal.NewFromInt(80),
		},
	}
)

func assertTotal(t *testing.T, c *Cart, want int64) {
	t.Helper()
	got := c.Total()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("expected total %d, got %s", want, got)
	}
}

func TestAddMergesSameProductAndSize(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 1)
	c.Add(rice, catalog.Size1kg, 2)
	c.Add(rice, catalog.Size1kg, 4)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestAddKeepsSizesApart(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 1)
	c.Add(rice, catalog.Size500g, 1)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, catalog.Size1kg, items[0].Size)
	assert.Equal(t, catalog.Size500g, items[1].Size)
}

func TestAddCoercesQuantity(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 0)
	c.Add(turmeric, catalog.Size250g, -3)

	for _, it := range c.Items() {
		assert.Equal(t, 1, it.Quantity)
	}
}

func TestTotalScenario(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)
	c.Add(turmeric, catalog.Size250g, 1)

	assertTotal(t, c, 580)

	c.UpdateQuantity(rice.ID, catalog.Size1kg, 3)
	assertTotal(t, c, 830)

	c.Remove(turmeric.ID, catalog.Size250g)
	assertTotal(t, c, 750)
}

func TestTotalWithDecimalPrices(t *testing.T) {
	ghee := catalog.Product{
		ID:     "ghee",
		Prices: map[catalog.Size]decimal.Decimal{catalog.Size500g: decimal.RequireFromString("199.99")},
	}
	c := New()
	c.Add(ghee, catalog.Size500g, 3)

	assert.Equal(t, "599.97", c.Total().String())
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		c := New()
		c.Add(rice, catalog.Size1kg, 2)
		c.Add(turmeric, catalog.Size250g, 1)

		c.UpdateQuantity(rice.ID, catalog.Size1kg, qty)

		items := c.Items()
		require.Len(t, items, 1, "quantity %d", qty)
		assert.Equal(t, turmeric.ID, items[0].Product.ID)
		assertTotal(t, c, 80)
	}
}

func TestUpdateQuantityMissingIsNoop(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)

	c.UpdateQuantity(rice.ID, catalog.Size250g, 5)
	c.UpdateQuantity("missing", catalog.Size1kg, 5)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c := New()
	c.Remove(rice.ID, catalog.Size1kg)
	assert.True(t, c.IsEmpty())

	c.Add(rice, catalog.Size1kg, 1)
	c.Remove(rice.ID, catalog.Size500g)
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)
	c.Add(turmeric, catalog.Size250g, 1)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Items())
	assertTotal(t, c, 0)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestLines(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)
	c.Add(turmeric, catalog.Size250g, 1)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Basmati Rice", lines[0].Name)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(250)))
	assert.True(t, lines[0].Subtotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, lines[1].Subtotal.Equal(decimal.NewFromInt(80)))
}

func TestTakeEmptiesCart(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)
	c.Add(turmeric, catalog.Size250g, 1)

	taken := c.Take()

	require.Len(t, taken, 2)
	assert.True(t, c.IsEmpty())
	assert.True(t, TotalOf(taken).Equal(decimal.NewFromInt(580)))

	c.Add(rice, catalog.Size500g, 1)
	assert.Equal(t, 2, taken[0].Quantity, "later adds do not touch taken items")
	assert.Empty(t, New().Take())
}

func TestRestoreMergesWithLaterAdds(t *testing.T) {
	c := New()
	c.Add(rice, catalog.Size1kg, 2)
	c.Add(turmeric, catalog.Size250g, 1)
	taken := c.Take()

	c.Add(rice, catalog.Size500g, 1)
	c.Add(rice, catalog.Size1kg, 1)
	c.Restore(taken)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, catalog.Size1kg, items[0].Size)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "turmeric-powder", items[1].Product.ID)
	assert.Equal(t, catalog.Size500g, items[2].Size)
}
