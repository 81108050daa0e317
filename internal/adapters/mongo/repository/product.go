package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomstack/product-service/internal/adapters/mongo/document"
	"github.com/ecomstack/product-service/internal/core/domain"
	"github.com/ecomstack/product-service/internal/core/serviceerrors"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, "products"),
		collection:     db.Collection("products"),
	}
}

// EnsureIndexes creates the secondary indexes on name and category. They
// speed up the exact-match lookups; neither enforces uniqueness.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

// Save upserts. An empty ID inserts and writes the generated ID back to the
// product; a non-empty ID replaces the stored document in full.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	doc, err := document.ToProductDocument(product)
	if err != nil {
		return serviceerrors.NewInvalidRequestError(err.Error())
	}

	if product.ID == "" {
		result, err := r.collection.InsertOne(ctx, doc)
		if err != nil {
			return parseError(err)
		}
		product.ID = domain.ID(result.InsertedID.(primitive.ObjectID).Hex())
		return nil
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return parseError(err)
	}
	if result.MatchedCount == 0 {
		return serviceerrors.NewNotFoundError("entity not found")
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain()
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.findProducts(ctx, bson.M{})
}

// GetByCategory matches the category string exactly and case-sensitively.
func (r *ProductRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.findProducts(ctx, bson.M{"category": category})
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	doc, err := r.FindOne(ctx, bson.M{"name": name})
	if err != nil {
		return nil, err
	}

	return doc.ToDomain()
}

func (r *ProductRepository) GetByStockGreaterThan(ctx context.Context, quantity int) ([]*domain.Product, error) {
	return r.findProducts(ctx, bson.M{"stock_quantity": bson.M{"$gt": quantity}})
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, string(id))
}

func (r *ProductRepository) findProducts(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	docs, err := r.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		if products[i], err = doc.ToDomain(); err != nil {
			return nil, err
		}
	}

	return products, nil
}
