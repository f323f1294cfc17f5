package domain

import "github.com/shopspring/decimal"

// Cart is the per-visitor mapping of product id to desired quantity. It
// lives in transient session storage and never contains an entry with
// quantity <= 0.
type Cart struct {
	Items map[int64]int `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: make(map[int64]int)}
}

// Add increments the quantity for productID, creating the entry at 1.
func (c *Cart) Add(productID int64) {
	if c.Items == nil {
		c.Items = make(map[int64]int)
	}
	c.Items[productID]++
}

// Remove drops quantity for productID by one and deletes the entry when it
// reaches zero. Absent ids are a no-op.
func (c *Cart) Remove(productID int64) {
	qty, ok := c.Items[productID]
	if !ok {
		return
	}
	qty--
	if qty <= 0 {
		delete(c.Items, productID)
		return
	}
	c.Items[productID] = qty
}

// Quantity returns the current quantity for productID, zero if absent.
func (c *Cart) Quantity(productID int64) int {
	return c.Items[productID]
}

// Count is the total number of items across all entries.
func (c *Cart) Count() int {
	total := 0
	for _, qty := range c.Items {
		total += qty
	}
	return total
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// CartItem is a cart entry joined against the catalog: the product, its
// quantity, and the line total rounded to two decimal places.
type CartItem struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}
