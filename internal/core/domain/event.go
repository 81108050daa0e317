package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ProductEventType string

const (
	ProductCreated ProductEventType = "CREATED"
	ProductUpdated ProductEventType = "UPDATED"
	ProductDeleted ProductEventType = "DELETED"
)

// ProductEvent is an immutable snapshot of a product at a lifecycle
// transition. It is a message, not an entity: it carries no identity beyond
// its fields and is never persisted by this service. For DELETED the snapshot
// is taken before the record is removed.
type ProductEvent struct {
	ID            ID               `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	Category      string           `json:"category"`
	StockQuantity int              `json:"stockQuantity"`
	EventType     ProductEventType `json:"eventType"`
}

func NewProductEvent(product *Product, eventType ProductEventType) *ProductEvent {
	return &ProductEvent{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		EventType:     eventType,
	}
}

func (e *ProductEvent) GetName() string {
	return "product." + strings.ToLower(string(e.EventType))
}

func (e *ProductEvent) GetEntityName() string {
	return "product"
}

// GetKey is the broker message key; consumers partition on it.
func (e *ProductEvent) GetKey() string {
	return string(e.ID)
}
