package domain

// Bounds for admin product input. Values above the ceiling are rejected
// before any request is issued.
const (
	MaxStock = 10000
	MaxPrice = 99999.99
)

// Product is a read-only snapshot row from the catalog. The wire keys
// follow the platform schema.
type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"titulo"`
	Detail   string  `json:"detalle"`
	Price    float64 `json:"precio"`
	Stock    int     `json:"cantidad"`
	ImageURL string  `json:"imagen_url,omitempty"`
}
