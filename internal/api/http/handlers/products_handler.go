package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductCatalog is the product service surface used by the handler.
type ProductCatalog interface {
	Create(ctx context.Context, product *domain.Product) ([]domain.Product, error)
	Update(ctx context.Context, patch *domain.ProductPatch) ([]domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) ([]domain.Product, error)
	Retrieve(ctx context.Context, userID string) ([]domain.Product, error)
}

// ProductsHandler serves the caller's products. Every operation is scoped to
// the authenticated user.
type ProductsHandler struct {
	products  ProductCatalog
	validator PayloadValidator
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products ProductCatalog, validator PayloadValidator) *ProductsHandler {
	return &ProductsHandler{products: products, validator: validator}
}

// List handles GET /api/product.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	products, err := h.products.Retrieve(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewProductResponses(products)...))
}

// Create handles POST /api/product.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	var req dto.ProductRequest
	if err := decode(c, h.validator, &req); err != nil {
		return err
	}

	products, err := h.products.Create(c.UserContext(), req.ToProduct(user.ID))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Data(dto.NewProductResponses(products)...))
}

// Update handles PUT /api/product.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	var req dto.ProductRequest
	if err := decode(c, h.validator, &req); err != nil {
		return err
	}

	products, err := h.products.Update(c.UserContext(), req.ToPatch(user.ID))
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewProductResponses(products)...))
}

// Delete handles DELETE /api/product.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	var req dto.ProductDeleteRequest
	if err := decode(c, h.validator, &req); err != nil {
		return err
	}

	products, err := h.products.Delete(c.UserContext(), &domain.Product{ID: req.ID, UserID: user.ID})
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewProductResponses(products)...))
}
