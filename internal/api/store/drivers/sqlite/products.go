package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
)

type productsRepo struct {
	q querier
}

const productColumns = `id, name, description, price, stock, created_at, updated_at`

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (r *productsRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id DESC`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, mapSQLError(rows.Err())
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, now, now)
	return mapSQLError(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Stock, time.Now().UTC(), p.ID)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

// AdjustStock applies a relative change to a product's stock. The schema's
// CHECK (stock >= 0) turns an oversell into ErrInsufficientStock.
func (r *productsRepo) AdjustStock(ctx context.Context, productID string, delta int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`,
		delta, time.Now().UTC(), productID)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, mapSQLError(err)
	}
	return p, nil
}
