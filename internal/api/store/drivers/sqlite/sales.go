package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
)

type salesRepo struct {
	q querier
}

const saleColumns = `id, customer_id, product_id, quantity, total, sold_at, created_at, updated_at`

func (r *salesRepo) GetSaleByID(ctx context.Context, id string) (domain.Sale, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	return scanSale(row)
}

func (r *salesRepo) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+saleColumns+` FROM sales ORDER BY id DESC`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, mapSQLError(rows.Err())
}

func (r *salesRepo) CreateSale(ctx context.Context, s domain.Sale) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sales (id, customer_id, product_id, quantity, total, sold_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CustomerID, s.ProductID, s.Quantity, s.Total, s.SoldAt.UTC(), now, now)
	return mapSQLError(err)
}

func (r *salesRepo) UpdateSale(ctx context.Context, s domain.Sale) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sales
		 SET customer_id = ?, product_id = ?, quantity = ?, total = ?, sold_at = ?, updated_at = ?
		 WHERE id = ?`,
		s.CustomerID, s.ProductID, s.Quantity, s.Total, s.SoldAt.UTC(), time.Now().UTC(), s.ID)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

func (r *salesRepo) DeleteSale(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

func scanSale(row rowScanner) (domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.Total, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Sale{}, mapSQLError(err)
	}
	return s, nil
}
