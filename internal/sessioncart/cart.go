// Package sessioncart holds the guest cart: lines kept against the
// caller's browser session, never the database. It is also the
// degraded-mode target when a persisted cart write fails.
package sessioncart

import "encoding/json"

type Line struct {
	InvID    string  `json:"inv_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	Lines []Line
}

// Decode restores a cart from its session-stored JSON form. Anything
// unreadable yields an empty cart rather than an error; the session is
// best-effort state.
func Decode(raw string) *Cart {
	c := &Cart{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &c.Lines)
	}
	return c
}

// Encode serializes the cart for storage in the session.
func (c *Cart) Encode() string {
	b, _ := json.Marshal(c.Lines)
	return string(b)
}

// Add inserts a line or increments the quantity of an existing one.
func (c *Cart) Add(l Line) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].InvID == l.InvID {
			c.Lines[i].Quantity += l.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, l)
}

// SetQuantity sets a line's quantity; zero removes the line. Returns
// false when no line with that id exists.
func (c *Cart) SetQuantity(invID string, qty int) bool {
	for i := range c.Lines {
		if c.Lines[i].InvID == invID {
			if qty == 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = qty
			}
			return true
		}
	}
	return false
}

// Remove drops the line with the given id if present.
func (c *Cart) Remove(invID string) {
	for i := range c.Lines {
		if c.Lines[i].InvID == invID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Subtotal is the unrounded sum over all lines.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Count sums line quantities.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}
