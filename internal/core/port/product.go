package port

import (
	"context"

	"github.com/ecomstack/product-service/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	// Save upserts: with an empty ID it inserts and assigns a fresh ID to the
	// product; with a non-empty ID it fully replaces the stored document.
	// Replacing an ID that matches no stored document fails with NotFound —
	// IDs are store-assigned, so a caller can never mint a valid new one.
	Save(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	GetByStockGreaterThan(ctx context.Context, quantity int) ([]*domain.Product, error)
	Delete(ctx context.Context, id domain.ID) error
}
