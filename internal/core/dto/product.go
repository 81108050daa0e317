package dto

import "github.com/shopspring/decimal"

// ProductRequest is the write payload for both create and update. The update
// is a full-field overwrite, so the two operations share one shape.
// StockQuantity is a pointer so that an absent field can be told apart from
// an explicit zero.
type ProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity *int            `json:"stockQuantity"`
}

func (r *ProductRequest) Stock() int {
	if r.StockQuantity == nil {
		return 0
	}
	return *r.StockQuantity
}
