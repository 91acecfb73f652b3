package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
)

type customersRepo struct {
	q querier
}

const customerColumns = `id, name, email, address, phone, created_at, updated_at`

func (r *customersRepo) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	return scanCustomer(row)
}

func (r *customersRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY id DESC`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, mapSQLError(rows.Err())
}

func (r *customersRepo) CreateCustomer(ctx context.Context, c domain.Customer) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, address, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Address, c.Phone, now, now)
	return mapSQLError(err)
}

func (r *customersRepo) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers
		 SET name = ?, email = ?, address = ?, phone = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Email, c.Address, c.Phone, time.Now().UTC(), c.ID)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

func (r *customersRepo) DeleteCustomer(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(res)
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Customer{}, mapSQLError(err)
	}
	return c, nil
}
