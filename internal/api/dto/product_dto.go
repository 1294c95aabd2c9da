package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductRequest is the body for create, update and delete. Absent optional
// fields decode to nil.
type ProductRequest struct {
	ID       string   `json:"id"`
	Title    string   `json:"title" validate:"required"`
	Material *string  `json:"material,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Company  *string  `json:"company,omitempty"`
}

// ProductDeleteRequest identifies the product to delete.
type ProductDeleteRequest struct {
	ID string `json:"id" validate:"required"`
}

// ToProduct builds a new product owned by userID.
func (r ProductRequest) ToProduct(userID string) *domain.Product {
	return &domain.Product{
		UserID:   userID,
		Title:    r.Title,
		Material: r.Material,
		Price:    r.Price,
		Company:  r.Company,
	}
}

// ToPatch builds an update for userID's product.
func (r ProductRequest) ToPatch(userID string) *domain.ProductPatch {
	return &domain.ProductPatch{
		ID:       r.ID,
		UserID:   userID,
		Title:    r.Title,
		Material: r.Material,
		Price:    r.Price,
		Company:  r.Company,
	}
}

// ProductResponse is the outward view of a product.
type ProductResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Material  *string   `json:"material"`
	Price     *float64  `json:"price"`
	Company   *string   `json:"company"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProductResponses maps a product list, preserving order.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			ID:        p.ID,
			UserID:    p.UserID,
			Title:     p.Title,
			Material:  p.Material,
			Price:     p.Price,
			Company:   p.Company,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out
}
