package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ecomstack/product-service/internal/core/domain"
)

// ProductDocument is the on-disk shape of a product. Price is stored as
// Decimal128 so currency amounts survive round-trips without float rounding.
type ProductDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Name          string               `bson:"name"`
	Description   string               `bson:"description"`
	Price         primitive.Decimal128 `bson:"price"`
	Category      string               `bson:"category"`
	StockQuantity int                  `bson:"stock_quantity"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func (doc ProductDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() (*domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for product %s: %w", doc.ID.Hex(), err)
	}

	return &domain.Product{
		ID:            domain.ID(doc.ID.Hex()),
		Name:          doc.Name,
		Description:   doc.Description,
		Price:         price,
		Category:      doc.Category,
		StockQuantity: doc.StockQuantity,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func ToProductDocument(p *domain.Product) (*ProductDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", p.Price.String(), err)
	}

	doc := &ProductDocument{
		Name:          p.Name,
		Description:   p.Description,
		Price:         price,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if p.ID != "" {
		objectID, err := primitive.ObjectIDFromHex(string(p.ID))
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", p.ID, err)
		}
		doc.ID = objectID
	}

	return doc, nil
}
