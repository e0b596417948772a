package domain

// CartLine is one product-quantity pairing for the current identity,
// flattened from the server's {id, quantity, product} row. The
// authoritative copy lives on the server; this is the client mirror.
type CartLine struct {
	ID        int64
	ProductID int64
	Title     string
	Detail    string
	Price     float64
	ImageURL  string
	Stock     int
	Quantity  int
}

// Total is the line total at current unit price. Computed fresh on every
// render, never stored.
func (l CartLine) Total() float64 {
	return l.Price * float64(l.Quantity)
}
