package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/ecomstack/product-service/internal/core/domain"
	"github.com/ecomstack/product-service/internal/core/dto"
	"github.com/ecomstack/product-service/internal/core/port/mock"
	"github.com/ecomstack/product-service/internal/core/serviceerrors"
)

const testProductID = domain.ID("aabbccddee112233aabbccdd")

func setupProductService(t *testing.T) (*ProductService, *mock.MockProductPort, *mock.MockBrokerPort) {
	ctrl := gomock.NewController(t)
	productRepo := mock.NewMockProductPort(ctrl)
	broker := mock.NewMockBrokerPort(ctrl)
	svc := NewProductService(productRepo, NewEventPublisher(broker, 1*time.Second))
	return svc, productRepo, broker
}

func validRequest() *dto.ProductRequest {
	stock := 15
	return &dto.ProductRequest{
		Name:          "Gaming Laptop",
		Description:   "High-performance laptop with RTX 4080 GPU",
		Price:         decimal.NewFromFloat(1999.99),
		Category:      "Electronics",
		StockQuantity: &stock,
	}
}

// expectPublish registers a broker expectation and returns a channel that
// carries the event once the detached publish goroutine has run.
func expectPublish(broker *mock.MockBrokerPort, result error) <-chan *domain.ProductEvent {
	ch := make(chan *domain.ProductEvent, 1)
	broker.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.Event) error {
			ch <- event.(*domain.ProductEvent)
			return result
		})
	return ch
}

func waitForEvent(t *testing.T, ch <-chan *domain.ProductEvent) *domain.ProductEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event publish")
		return nil
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("persists, stamps timestamps and publishes CREATED with the assigned id", func(t *testing.T) {
		svc, productRepo, broker := setupProductService(t)
		req := validRequest()

		productRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				p.ID = testProductID
				return nil
			})
		published := expectPublish(broker, nil)

		product, err := svc.CreateProduct(context.Background(), req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.ID == "" {
			t.Fatal("expected a non-empty id after create")
		}
		if !product.CreatedAt.Equal(product.UpdatedAt) {
			t.Fatalf("expected CreatedAt == UpdatedAt, got %v and %v", product.CreatedAt, product.UpdatedAt)
		}

		event := waitForEvent(t, published)
		if event.EventType != domain.ProductCreated {
			t.Fatalf("expected CREATED event, got %s", event.EventType)
		}
		if event.ID != testProductID {
			t.Fatalf("expected event to carry the persisted id, got %q", event.ID)
		}
		if event.Name != req.Name || !event.Price.Equal(req.Price) || event.StockQuantity != *req.StockQuantity {
			t.Fatalf("event does not mirror the persisted product: %+v", event)
		}
	})

	t.Run("rejects invalid input before touching the repository", func(t *testing.T) {
		svc, _, _ := setupProductService(t)
		req := &dto.ProductRequest{
			Name:  "AB",
			Price: decimal.NewFromInt(-10),
		}

		product, err := svc.CreateProduct(context.Background(), req)
		if product != nil {
			t.Fatal("expected nil product on validation failure")
		}
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidationFailed) {
			t.Fatalf("expected KindValidationFailed, got %v", err)
		}

		var svcErr *serviceerrors.ServiceError
		errors.As(err, &svcErr)
		for _, want := range []string{
			"name: Product name must be between 3 and 100 characters",
			"description: Product description is required",
			"price: Price must be greater than 0",
			"category: Category is required",
			"stockQuantity: Stock quantity is required",
		} {
			if !slices.Contains(svcErr.Violations, want) {
				t.Fatalf("expected violation %q, got %v", want, svcErr.Violations)
			}
		}
	})

	t.Run("repository error propagates and nothing is published", func(t *testing.T) {
		svc, productRepo, _ := setupProductService(t)

		productRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := svc.CreateProduct(context.Background(), validRequest())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("publish failure is swallowed and the create still succeeds", func(t *testing.T) {
		svc, productRepo, broker := setupProductService(t)

		productRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				p.ID = testProductID
				return nil
			})
		published := expectPublish(broker, errors.New("broker unavailable"))

		product, err := svc.CreateProduct(context.Background(), validRequest())
		if err != nil {
			t.Fatalf("expected no error despite broker failure, got %v", err)
		}
		if product.ID != testProductID {
			t.Fatalf("expected persisted product, got %+v", product)
		}
		waitForEvent(t, published)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, productRepo, _ := setupProductService(t)
		expected := &domain.Product{ID: testProductID, Name: "Gaming Laptop"}

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(expected, nil)

		product, err := svc.GetProductByID(context.Background(), testProductID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.ID != expected.ID {
			t.Fatalf("expected id %s, got %s", expected.ID, product.ID)
		}
	})

	t.Run("not found carries the id in the message", func(t *testing.T) {
		svc, productRepo, _ := setupProductService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(nil, serviceerrors.NewNotFoundError("entity not found"))

		_, err := svc.GetProductByID(context.Background(), testProductID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
		want := "Product not found with id: " + string(testProductID)
		if err.Error() != want {
			t.Fatalf("expected message %q, got %q", want, err.Error())
		}
	})
}

func TestProductService_GetProductsByCategory(t *testing.T) {
	t.Run("empty result is not an error", func(t *testing.T) {
		svc, productRepo, _ := setupProductService(t)

		productRepo.EXPECT().
			GetByCategory(gomock.Any(), "Electronics").
			Return([]*domain.Product{}, nil)

		products, err := svc.GetProductsByCategory(context.Background(), "Electronics")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(products) != 0 {
			t.Fatalf("expected empty list, got %d products", len(products))
		}
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Run("overwrites fields, keeps CreatedAt and publishes UPDATED", func(t *testing.T) {
		svc, productRepo, broker := setupProductService(t)
		createdAt := time.Now().Add(-24 * time.Hour)
		existing := &domain.Product{
			ID:            testProductID,
			Name:          "Old Name",
			Description:   "The previous product description",
			Price:         decimal.NewFromInt(10),
			Category:      "Books",
			StockQuantity: 1,
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}
		req := validRequest()

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(existing, nil)
		productRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil)
		published := expectPublish(broker, nil)

		product, err := svc.UpdateProduct(context.Background(), testProductID, req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !product.CreatedAt.Equal(createdAt) {
			t.Fatalf("expected CreatedAt untouched, got %v", product.CreatedAt)
		}
		if !product.UpdatedAt.After(createdAt) {
			t.Fatalf("expected UpdatedAt to advance past %v, got %v", createdAt, product.UpdatedAt)
		}
		if product.Name != req.Name || product.Category != req.Category || product.StockQuantity != *req.StockQuantity {
			t.Fatalf("expected full-field overwrite, got %+v", product)
		}

		event := waitForEvent(t, published)
		if event.EventType != domain.ProductUpdated {
			t.Fatalf("expected UPDATED event, got %s", event.EventType)
		}
		if event.ID != testProductID || event.Name != req.Name {
			t.Fatalf("event does not mirror the updated product: %+v", event)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, productRepo, _ := setupProductService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(nil, serviceerrors.NewNotFoundError("entity not found"))

		_, err := svc.UpdateProduct(context.Background(), testProductID, validRequest())
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})

	t.Run("invalid payload fails before the lookup", func(t *testing.T) {
		svc, _, _ := setupProductService(t)

		_, err := svc.UpdateProduct(context.Background(), testProductID, &dto.ProductRequest{})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidationFailed) {
			t.Fatalf("expected KindValidationFailed, got %v", err)
		}
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Run("publishes DELETED with the pre-delete snapshot", func(t *testing.T) {
		svc, productRepo, broker := setupProductService(t)
		existing := &domain.Product{
			ID:            testProductID,
			Name:          "Gaming Laptop",
			Description:   "High-performance laptop with RTX 4080 GPU",
			Price:         decimal.NewFromFloat(1999.99),
			Category:      "Electronics",
			StockQuantity: 15,
		}

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(existing, nil)
		productRepo.EXPECT().
			Delete(gomock.Any(), testProductID).
			Return(nil)
		published := expectPublish(broker, nil)

		if err := svc.DeleteProduct(context.Background(), testProductID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		event := waitForEvent(t, published)
		if event.EventType != domain.ProductDeleted {
			t.Fatalf("expected DELETED event, got %s", event.EventType)
		}
		if event.ID != testProductID || event.Name != existing.Name || event.StockQuantity != existing.StockQuantity {
			t.Fatalf("expected pre-delete snapshot, got %+v", event)
		}
	})

	t.Run("not found, nothing published or deleted", func(t *testing.T) {
		svc, productRepo, _ := setupProductService(t)

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(nil, serviceerrors.NewNotFoundError("entity not found"))

		err := svc.DeleteProduct(context.Background(), testProductID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})

	t.Run("repository delete error propagates", func(t *testing.T) {
		svc, productRepo, broker := setupProductService(t)
		existing := &domain.Product{ID: testProductID, Name: "Gaming Laptop"}

		productRepo.EXPECT().
			GetByID(gomock.Any(), testProductID).
			Return(existing, nil)
		productRepo.EXPECT().
			Delete(gomock.Any(), testProductID).
			Return(errors.New("delete failed"))
		published := expectPublish(broker, nil)

		if err := svc.DeleteProduct(context.Background(), testProductID); err == nil {
			t.Fatal("expected error, got nil")
		}
		waitForEvent(t, published)
	})
}
