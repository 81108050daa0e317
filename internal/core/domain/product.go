package domain

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	NameMinLength        = 3
	NameMaxLength        = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 500
)

var (
	categoryPattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	minPrice        = decimal.NewFromFloat(0.01)
)

// API responses and event payloads carry prices as JSON numbers, not quoted
// strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            ID
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct builds an unpersisted product. Both audit stamps carry the same
// instant so that CreatedAt == UpdatedAt holds after the first save.
func NewProduct(name, description string, price decimal.Decimal, category string, stockQuantity int) *Product {
	now := time.Now()
	return &Product{
		Name:          name,
		Description:   description,
		Price:         price,
		Category:      category,
		StockQuantity: stockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks every field constraint and returns one violation per failed
// field. Checks are purely structural, nothing is verified against the store.
func (p *Product) Validate() []FieldViolation {
	var violations []FieldViolation

	switch nameLen := utf8.RuneCountInString(p.Name); {
	case isBlank(p.Name):
		violations = append(violations, FieldViolation{Field: "name", Reason: "Product name is required"})
	case nameLen < NameMinLength || nameLen > NameMaxLength:
		violations = append(violations, FieldViolation{
			Field:  "name",
			Reason: fmt.Sprintf("Product name must be between %d and %d characters", NameMinLength, NameMaxLength),
		})
	}

	switch descLen := utf8.RuneCountInString(p.Description); {
	case isBlank(p.Description):
		violations = append(violations, FieldViolation{Field: "description", Reason: "Product description is required"})
	case descLen < DescriptionMinLength || descLen > DescriptionMaxLength:
		violations = append(violations, FieldViolation{
			Field:  "description",
			Reason: fmt.Sprintf("Description must be between %d and %d characters", DescriptionMinLength, DescriptionMaxLength),
		})
	}

	if p.Price.LessThan(minPrice) {
		violations = append(violations, FieldViolation{Field: "price", Reason: "Price must be greater than 0"})
	}

	switch {
	case isBlank(p.Category):
		violations = append(violations, FieldViolation{Field: "category", Reason: "Category is required"})
	case !categoryPattern.MatchString(p.Category):
		violations = append(violations, FieldViolation{Field: "category", Reason: "Category can only contain letters, numbers, and spaces"})
	}

	if p.StockQuantity < 0 {
		violations = append(violations, FieldViolation{Field: "stockQuantity", Reason: "Stock quantity cannot be negative"})
	}

	return violations
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
