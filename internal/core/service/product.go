package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomstack/product-service/internal/core/domain"
	"github.com/ecomstack/product-service/internal/core/dto"
	"github.com/ecomstack/product-service/internal/core/logger"
	"github.com/ecomstack/product-service/internal/core/port"
	"github.com/ecomstack/product-service/internal/core/serviceerrors"
)

type ProductService struct {
	productRepository port.ProductPort
	events            *EventPublisher
}

func NewProductService(productRepository port.ProductPort, events *EventPublisher) *ProductService {
	return &ProductService{productRepository: productRepository, events: events}
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepository.GetAll(ctx)
}

func (s *ProductService) GetProductByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundWithID(err, id)
	}
	return product, nil
}

func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.productRepository.GetByCategory(ctx, category)
}

// CreateProduct runs the write pipeline: validate, stamp both audit fields
// with one instant, persist (the insert assigns the ID), then hand a CREATED
// snapshot of the persisted product to the publisher. The publish is
// dispatched after persistence so the event carries the real ID.
func (s *ProductService) CreateProduct(ctx context.Context, request *dto.ProductRequest) (*domain.Product, error) {
	product := domain.NewProduct(request.Name, request.Description, request.Price, request.Category, request.Stock())
	if err := validateRequest(product, request); err != nil {
		return nil, err
	}

	if err := s.productRepository.Save(ctx, product); err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":     request.Name,
			"category": request.Category,
		})
		return nil, err
	}

	s.events.Publish(ctx, domain.NewProductEvent(product, domain.ProductCreated))

	logger.Info(ctx, "Product created", map[string]any{"product_id": string(product.ID)})
	return product, nil
}

// UpdateProduct overwrites every mutable field from the payload (no partial
// merge), advances UpdatedAt and leaves CreatedAt untouched.
func (s *ProductService) UpdateProduct(ctx context.Context, id domain.ID, request *dto.ProductRequest) (*domain.Product, error) {
	candidate := domain.NewProduct(request.Name, request.Description, request.Price, request.Category, request.Stock())
	if err := validateRequest(candidate, request); err != nil {
		return nil, err
	}

	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundWithID(err, id)
	}

	product.Name = request.Name
	product.Description = request.Description
	product.Price = request.Price
	product.Category = request.Category
	product.StockQuantity = request.Stock()
	product.UpdatedAt = time.Now()

	if err := s.productRepository.Save(ctx, product); err != nil {
		logger.Error(ctx, "product: update failed", err, map[string]any{"product_id": string(id)})
		return nil, err
	}

	s.events.Publish(ctx, domain.NewProductEvent(product, domain.ProductUpdated))

	logger.Info(ctx, "Product updated", map[string]any{"product_id": string(id)})
	return product, nil
}

// DeleteProduct dispatches the DELETED event before removing the document so
// the snapshot captures the data while it still exists.
func (s *ProductService) DeleteProduct(ctx context.Context, id domain.ID) error {
	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		return notFoundWithID(err, id)
	}

	s.events.Publish(ctx, domain.NewProductEvent(product, domain.ProductDeleted))

	if err := s.productRepository.Delete(ctx, id); err != nil {
		logger.Error(ctx, "product: delete failed", err, map[string]any{"product_id": string(id)})
		return err
	}

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": string(id)})
	return nil
}

func validateRequest(product *domain.Product, request *dto.ProductRequest) error {
	violations := product.Validate()
	if request.StockQuantity == nil {
		violations = append(violations, domain.FieldViolation{Field: "stockQuantity", Reason: "Stock quantity is required"})
	}
	if len(violations) == 0 {
		return nil
	}

	messages := make([]string, len(violations))
	for i, v := range violations {
		messages[i] = v.String()
	}
	return serviceerrors.NewValidationError(messages)
}

// notFoundWithID rewrites repository-level not-found errors so the message
// carries the lookup key; everything else passes through unchanged.
func notFoundWithID(err error, id domain.ID) error {
	if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		return serviceerrors.NewNotFoundError(fmt.Sprintf("Product not found with id: %s", id))
	}
	return err
}
