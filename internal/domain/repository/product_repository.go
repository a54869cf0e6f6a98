package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog_service/internal/common"
	"catalog_service/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (name, category, price, description, image_url, owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Category, p.Price, p.Description, p.ImageURL, p.OwnerID).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT id, name, category, price, description, image_url, owner_id, created_at, updated_at
	          FROM products WHERE id = $1`
	p := &model.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.ImageURL, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, name, category, price, description, image_url, owner_id, created_at, updated_at
	          FROM products ORDER BY id ASC`
	return r.queryProducts(ctx, query)
}

func (r *pgProductRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Product, error) {
	query := `SELECT id, name, category, price, description, image_url, owner_id, created_at, updated_at
	          FROM products WHERE owner_id = $1 ORDER BY id ASC`
	return r.queryProducts(ctx, query, ownerID)
}

func (r *pgProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.queryProducts query: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.ImageURL, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgProductRepository.queryProducts scan: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProductRepository.queryProducts rows.Err: %w", err)
	}
	return products, nil
}

// Update overwrites every mutable column. The service layer decides which
// fields change; owner_id is deliberately absent from the SET list.
func (r *pgProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET
	            name = $1, category = $2, price = $3, description = $4,
	            image_url = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.Price, p.Description, p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
