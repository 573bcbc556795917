package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
)

// Cart is the ordered set of items selected during one session.
// Entries are unique per (product id, size) and always hold a quantity of at least 1.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add merges quantity into the existing entry for product+size or appends a new one.
// A quantity below 1 is treated as 1.
func (c *Cart) Add(product catalog.Product, size catalog.Size, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(key{product.ID, size}); i >= 0 {
		c.items[i].Quantity += quantity
		return
	}
	c.items = append(c.items, Item{Product: product, Size: size, Quantity: quantity})
}

func (c *Cart) Remove(productID string, size catalog.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key{productID, size})
}

// UpdateQuantity sets the quantity of an existing entry. Anything below 1 removes it.
func (c *Cart) UpdateQuantity(productID string, size catalog.Size, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{productID, size}
	if quantity < 1 {
		c.removeLocked(k)
		return
	}
	if i := c.indexOf(k); i >= 0 {
		c.items[i].Quantity = quantity
	}
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TotalOf(c.items)
}

// TotalOf sums price[size] x quantity over items.
func TotalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Take empties the cart and returns what it held, under one lock.
func (c *Cart) Take() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.items
	c.items = nil
	return out
}

// Restore puts taken items back in front of anything added since, merging equal entries.
func (c *Cart) Restore(items []Item) {
	if len(items) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make([]Item, 0, len(items)+len(c.items))
	merged = append(merged, items...)
	for _, it := range c.items {
		if i := indexIn(merged, key{it.Product.ID, it.Size}); i >= 0 {
			merged[i].Quantity += it.Quantity
			continue
		}
		merged = append(merged, it)
	}
	c.items = merged
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Lines() []Line {
	items := c.Items()
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.Line())
	}
	return lines
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

func (c *Cart) indexOf(k key) int {
	return indexIn(c.items, k)
}

func indexIn(items []Item, k key) int {
	for i, it := range items {
		if it.Product.ID == k.productID && it.Size == k.size {
			return i
		}
	}
	return -1
}

func (c *Cart) removeLocked(k key) {
	i := c.indexOf(k)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}
