package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tally/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrInsufficientStock is returned when a sale would take a product's
	// stock below zero.
	ErrInsufficientStock = errors.New("store: insufficient stock")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever outgrow it) implement this. It exposes
// sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Customers() Customers
	Products() Products
	Sales() Sales

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// This is the recommended way to handle multi-step writes (e.g. a
	// sale plus its stock adjustment).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns at most one user by exact email match. This
	// is the only query the credential verifier needs.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser replaces the mutable fields and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, id string) error
}

type Customers interface {
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, c domain.Customer) error
	UpdateCustomer(ctx context.Context, c domain.Customer) error

	// DeleteCustomer fails while sales still reference the customer
	// (enforced by the schema's foreign keys).
	DeleteCustomer(ctx context.Context, id string) error
}

type Products interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// AdjustStock applies a relative stock change (negative for a sale)
	// and fails with ErrInsufficientStock rather than going negative.
	AdjustStock(ctx context.Context, productID string, delta int64) error
}

type Sales interface {
	GetSaleByID(ctx context.Context, id string) (domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	CreateSale(ctx context.Context, s domain.Sale) error
	UpdateSale(ctx context.Context, s domain.Sale) error
	DeleteSale(ctx context.Context, id string) error
}
