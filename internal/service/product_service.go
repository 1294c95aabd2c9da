package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// ProductService coordinates the owner-scoped product catalog.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products:   deps.ProductRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

func (s *ProductService) validateOwner(op, userID string) error {
	if strings.TrimSpace(userID) == "" {
		s.logger.Warn("product rejected", zap.String("op", op), zap.String("reason", "missing owner"))
		return apperrors.NewInvalidArgument("product must reference an owning user")
	}
	return nil
}

func (s *ProductService) validateTitle(op, title string) error {
	if strings.TrimSpace(title) == "" {
		s.logger.Warn("product rejected", zap.String("op", op), zap.String("reason", "missing title"))
		return apperrors.NewInvalidArgument("title is required")
	}
	return nil
}

// Create stores a new product and returns the owner's full list.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) ([]domain.Product, error) {
	if product == nil {
		return nil, apperrors.NewInvalidArgument("product is required")
	}
	if err := s.validateOwner("create", product.UserID); err != nil {
		return nil, err
	}
	if err := s.validateTitle("create", product.Title); err != nil {
		return nil, err
	}

	input := *product
	input.ID = ""
	saved, err := s.products.Save(ctx, &input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", saved.ID), zap.String("user_id", saved.UserID))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventProductCreated,
		UserID:    saved.UserID,
		ProductID: saved.ID,
		Payload:   productPayload(saved),
	})
	return s.products.FindByUserID(ctx, saved.UserID)
}

// Update merges patch into the stored product. Products owned by another
// user are reported as missing.
func (s *ProductService) Update(ctx context.Context, patch *domain.ProductPatch) ([]domain.Product, error) {
	if patch == nil {
		return nil, apperrors.NewInvalidArgument("product is required")
	}
	if err := s.validateOwner("update", patch.UserID); err != nil {
		return nil, err
	}
	if err := s.validateTitle("update", patch.Title); err != nil {
		return nil, err
	}

	current, err := s.findOwned(ctx, patch.ID, patch.UserID)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	saved, err := s.products.Save(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, productNotFound(patch.ID)
		}
		return nil, err
	}

	s.logger.Info("product updated", zap.String("product_id", saved.ID))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventProductUpdated,
		UserID:    saved.UserID,
		ProductID: saved.ID,
		Payload:   productPayload(saved),
	})
	return s.products.FindByUserID(ctx, saved.UserID)
}

// Delete removes the product and returns the owner's remaining list.
func (s *ProductService) Delete(ctx context.Context, product *domain.Product) ([]domain.Product, error) {
	if product == nil {
		return nil, apperrors.NewInvalidArgument("product is required")
	}
	if err := s.validateOwner("delete", product.UserID); err != nil {
		return nil, err
	}

	current, err := s.findOwned(ctx, product.ID, product.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, current); err != nil {
		s.logger.Error("product deletion failed", zap.String("product_id", current.ID), zap.Error(err))
		return nil, apperrors.NewDeletionError(current.ID, err)
	}

	s.logger.Info("product deleted", zap.String("product_id", current.ID))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventProductDeleted,
		UserID:    current.UserID,
		ProductID: current.ID,
		Payload:   productPayload(current),
	})
	return s.products.FindByUserID(ctx, current.UserID)
}

// Retrieve lists the user's products in insertion order.
func (s *ProductService) Retrieve(ctx context.Context, userID string) ([]domain.Product, error) {
	if err := s.validateOwner("retrieve", userID); err != nil {
		return nil, err
	}
	return s.products.FindByUserID(ctx, userID)
}

func (s *ProductService) findOwned(ctx context.Context, id, userID string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, productNotFound(id)
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, productNotFound(id)
		}
		return nil, err
	}
	if product.UserID != userID {
		return nil, productNotFound(id)
	}
	return product, nil
}

func productNotFound(id string) error {
	return apperrors.NewNotFound("product", map[string]any{"id": id})
}
