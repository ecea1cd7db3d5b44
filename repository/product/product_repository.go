package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"product-store/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	InitSchema(ctx context.Context) error
	List(ctx context.Context) ([]model.ProductEntity, error)
	GetByID(ctx context.Context, id int64) (*model.ProductEntity, error)
	Create(ctx context.Context, name string, price model.Price, imageURL string) (*model.ProductEntity, error)
	Update(ctx context.Context, id int64, name string, price model.Price, imageURL string) (*model.ProductEntity, error)
	Delete(ctx context.Context, id int64) (*model.ProductEntity, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS products (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price NUMERIC(10, 2) NOT NULL,
	image_url TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

	productColumns = `id, name, price, image_url, created_at`

	listProductsQuery  = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	getProductQuery    = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	insertProductQuery = `INSERT INTO products (name, price, image_url) VALUES ($1, $2, $3) RETURNING ` + productColumns
	updateProductQuery = `UPDATE products SET name = $2, price = $3, image_url = $4 WHERE id = $1 RETURNING ` + productColumns
	deleteProductQuery = `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns
)

// InitSchema creates the products table when it does not exist yet
func (s *SQL) InitSchema(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, createTableQuery)
	return err
}

func (s *SQL) List(ctx context.Context) ([]model.ProductEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProductEntity, 0)
	for rows.Next() {
		var it model.ProductEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// GetByID returns (nil, nil) when no row matches
func (s *SQL) GetByID(ctx context.Context, id int64) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Create(ctx context.Context, name string, price model.Price, imageURL string) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, insertProductQuery, name, price, imageURL).StructScan(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update replaces all mutable fields; returns (nil, nil) when no row matches
func (s *SQL) Update(ctx context.Context, id int64, name string, price model.Price, imageURL string) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, updateProductQuery, id, name, price, imageURL).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Delete hard-deletes the row; returns (nil, nil) when no row matches
func (s *SQL) Delete(ctx context.Context, id int64) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, deleteProductQuery, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}
