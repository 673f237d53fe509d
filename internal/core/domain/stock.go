package domain

import "time"

// StockEntry is the available quantity for one (product, size) pair.
// Quantity is never negative; it is mutated only through the ledger's
// reserve/release/set operations.
type StockEntry struct {
	ProductID string    `json:"productId"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	Version   int       `json:"-"` // optimistic locking
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ProductStock groups a product's per-size quantities for the API,
// e.g. {"jersey-7": {"S": 10, "M": 5}}.
type ProductStock struct {
	ProductID   string         `json:"productId"`
	StockBySize map[string]int `json:"stockBySize"`
}

// GroupStock folds flat ledger entries into per-product size maps,
// preserving first-seen product order.
func GroupStock(entries []StockEntry) []ProductStock {
	byProduct := make(map[string]*ProductStock)
	var out []ProductStock
	var order []string
	for _, e := range entries {
		ps, ok := byProduct[e.ProductID]
		if !ok {
			ps = &ProductStock{ProductID: e.ProductID, StockBySize: make(map[string]int)}
			byProduct[e.ProductID] = ps
			order = append(order, e.ProductID)
		}
		ps.StockBySize[e.Size] = e.Quantity
	}
	for _, id := range order {
		out = append(out, *byProduct[id])
	}
	return out
}
