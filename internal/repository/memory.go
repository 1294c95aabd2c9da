package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/shop-service/internal/domain"
)

// memoryUserRepository keeps users in process memory. Used when no
// POSTGRES_DSN is configured and as a test double.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns an in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *user
	now := time.Now().UTC()

	if saved.ID == "" {
		if _, taken := r.byEmail[saved.Email]; taken {
			return nil, ErrDuplicateEmail
		}
		saved.ID = uuid.NewString()
		saved.CreatedAt = now
		saved.UpdatedAt = now
		r.byID[saved.ID] = saved
		r.byEmail[saved.Email] = saved.ID
		return &saved, nil
	}

	current, ok := r.byID[saved.ID]
	if !ok {
		return nil, ErrNotFound
	}
	if owner, taken := r.byEmail[saved.Email]; taken && owner != saved.ID {
		return nil, ErrDuplicateEmail
	}
	delete(r.byEmail, current.Email)
	saved.CreatedAt = current.CreatedAt
	saved.UpdatedAt = now
	r.byID[saved.ID] = saved
	r.byEmail[saved.Email] = saved.ID
	return &saved, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

type memoryProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Product
	order []string
}

// NewMemoryProductRepository returns an in-memory ProductRepository.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{byID: make(map[string]domain.Product)}
}

func (r *memoryProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *product
	now := time.Now().UTC()

	if saved.ID == "" {
		saved.ID = uuid.NewString()
		saved.CreatedAt = now
		saved.UpdatedAt = now
		r.byID[saved.ID] = saved
		r.order = append(r.order, saved.ID)
		return &saved, nil
	}

	current, ok := r.byID[saved.ID]
	if !ok {
		return nil, ErrNotFound
	}
	// owner is immutable after creation
	saved.UserID = current.UserID
	saved.CreatedAt = current.CreatedAt
	saved.UpdatedAt = now
	r.byID[saved.ID] = saved
	return &saved, nil
}

func (r *memoryProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (r *memoryProductRepository) FindByUserID(_ context.Context, userID string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0)
	for _, id := range r.order {
		if product := r.byID[id]; product.UserID == userID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *memoryProductRepository) Delete(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[product.ID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, product.ID)
	for i, id := range r.order {
		if id == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
