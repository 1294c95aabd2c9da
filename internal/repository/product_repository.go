package repository

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	// Save inserts the product when ID is empty, otherwise updates it.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByUserID lists a user's products in insertion order.
	FindByUserID(ctx context.Context, userID string) ([]domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) error
}

type productRepository struct {
	db Querier
}

// NewProductRepository instantiates repository.
func NewProductRepository(db Querier) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved := *product
	if saved.ID == "" {
		const query = `
        INSERT INTO products (user_id, title, material, price, company)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

		if err := r.db.QueryRow(ctx, query,
			saved.UserID,
			saved.Title,
			saved.Material,
			saved.Price,
			saved.Company,
		).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "insert product")
		}
		return &saved, nil
	}

	const query = `
        UPDATE products SET title=$1, material=$2, price=$3, company=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING created_at, updated_at`

	if err := r.db.QueryRow(ctx, query,
		saved.Title,
		saved.Material,
		saved.Price,
		saved.Company,
		saved.ID,
	).Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "update product")
	}
	return &saved, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, user_id, title, material, price, company, created_at, updated_at
        FROM products WHERE id=$1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "select product")
	}
	return product, nil
}

func (r *productRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Product, error) {
	const query = `
        SELECT id, user_id, title, material, price, company, created_at, updated_at
        FROM products WHERE user_id=$1
        ORDER BY seq`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, product *domain.Product) error {
	const query = `DELETE FROM products WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, product.ID)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.UserID,
		&product.Title,
		&product.Material,
		&product.Price,
		&product.Company,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
