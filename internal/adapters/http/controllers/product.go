package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ecomstack/product-service/internal/adapters/http/handlers"
	"github.com/ecomstack/product-service/internal/core/domain"
	"github.com/ecomstack/product-service/internal/core/dto"
	"github.com/ecomstack/product-service/internal/core/service"
	"github.com/ecomstack/product-service/internal/core/serviceerrors"
)

type ProductController struct {
	productService *service.ProductService
}

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            string(product.ID),
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func newProductListResponse(products []*domain.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}
	return response
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// GetAllProducts godoc
// @Summary     List all products
// @Description Returns every product in the catalog
// @Tags        products
// @Produce     json
// @Success     200 {array}  ProductResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/products [get]
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products, err := pc.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductListResponse(products))
}

// GetProductByID godoc
// @Summary     Get product by ID
// @Description Returns a single product by its ID
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/products/{id} [get]
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, err := pc.productService.GetProductByID(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// GetProductsByCategory godoc
// @Summary     Get products by category
// @Description Returns products whose category matches the path segment exactly
// @Tags        products
// @Produce     json
// @Param       category path     string true "Category"
// @Success     200      {array}  ProductResponse
// @Failure     500      {object} handlers.ErrorResponse
// @Router      /api/products/category/{category} [get]
func (pc *ProductController) GetProductsByCategory(c *gin.Context) {
	products, err := pc.productService.GetProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductListResponse(products))
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Adds a new product to the catalog and publishes a CREATED event
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     dto.ProductRequest true "Product data"
// @Success     201     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// UpdateProduct godoc
// @Summary     Update product
// @Description Replaces every mutable field of an existing product and publishes an UPDATED event
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     string              true "Product ID"
// @Param       request body     dto.ProductRequest  true "Product data"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/products/{id} [put]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.UpdateProduct(c.Request.Context(), domain.ID(c.Param("id")), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Delete product
// @Description Publishes a DELETED event with the final snapshot, then removes the product
// @Tags        products
// @Param       id path string true "Product ID"
// @Success     204
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     429 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.productService.DeleteProduct(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
