package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    "Alice",
		LastName:     "Nguyen",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, got.Email)
		require.Equal(t, user.PasswordHash, got.PasswordHash)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := user
		dup.ID = idx.New().String()
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		user.FirstName = "Alicia"
		require.NoError(t, s.Users().UpdateUser(ctx, user))

		got, err := s.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "Alicia", got.FirstName)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, user.ID))

		_, err := s.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Users().DeleteUser(ctx, user.ID), store.ErrNotFound)
	})
}

func TestCustomersCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	customer := domain.Customer{
		ID:      idx.New().String(),
		Name:    "Northside Cafe",
		Email:   "orders@northside.example.com",
		Address: "12 High St",
		Phone:   "+61 400 000 000",
	}
	require.NoError(t, s.Customers().CreateCustomer(ctx, customer))

	got, err := s.Customers().GetCustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer.Name, got.Name)

	customer.Phone = "+61 400 111 111"
	require.NoError(t, s.Customers().UpdateCustomer(ctx, customer))

	list, err := s.Customers().ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "+61 400 111 111", list[0].Phone)

	require.NoError(t, s.Customers().DeleteCustomer(ctx, customer.ID))
	_, err = s.Customers().GetCustomerByID(ctx, customer.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductsStock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	product := domain.Product{
		ID:          idx.New().String(),
		Name:        "Flat White",
		Description: "Double shot",
		Price:       4.50,
		Stock:       3,
	}
	require.NoError(t, s.Products().CreateProduct(ctx, product))

	t.Run("adjust within stock", func(t *testing.T) {
		require.NoError(t, s.Products().AdjustStock(ctx, product.ID, -2))

		got, err := s.Products().GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, got.Stock)
	})

	t.Run("oversell rejected", func(t *testing.T) {
		err := s.Products().AdjustStock(ctx, product.ID, -5)
		require.ErrorIs(t, err, store.ErrInsufficientStock)

		got, err := s.Products().GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, got.Stock)
	})

	t.Run("restock", func(t *testing.T) {
		require.NoError(t, s.Products().AdjustStock(ctx, product.ID, 10))

		got, err := s.Products().GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		require.EqualValues(t, 11, got.Stock)
	})

	t.Run("unknown product", func(t *testing.T) {
		require.ErrorIs(t, s.Products().AdjustStock(ctx, "missing", -1), store.ErrNotFound)
	})
}

func TestSalesTransactional(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	customer := domain.Customer{ID: idx.New().String(), Name: "Walk-in", Email: "walkin@example.com"}
	require.NoError(t, s.Customers().CreateCustomer(ctx, customer))

	product := domain.Product{ID: idx.New().String(), Name: "Long Black", Price: 4.00, Stock: 5}
	require.NoError(t, s.Products().CreateProduct(ctx, product))

	t.Run("sale and stock adjustment commit together", func(t *testing.T) {
		sale := domain.Sale{
			ID:         idx.New().String(),
			CustomerID: customer.ID,
			ProductID:  product.ID,
			Quantity:   2,
			Total:      8.00,
			SoldAt:     time.Now().UTC(),
		}
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Sales().CreateSale(ctx, sale); err != nil {
				return err
			}
			return tx.Products().AdjustStock(ctx, product.ID, -sale.Quantity)
		})
		require.NoError(t, err)

		got, err := s.Sales().GetSaleByID(ctx, sale.ID)
		require.NoError(t, err)
		require.Equal(t, sale.CustomerID, got.CustomerID)
		require.InDelta(t, 8.00, got.Total, 0.001)

		p, err := s.Products().GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		require.EqualValues(t, 3, p.Stock)
	})

	t.Run("oversell rolls the whole sale back", func(t *testing.T) {
		sale := domain.Sale{
			ID:         idx.New().String(),
			CustomerID: customer.ID,
			ProductID:  product.ID,
			Quantity:   99,
			Total:      396.00,
			SoldAt:     time.Now().UTC(),
		}
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Sales().CreateSale(ctx, sale); err != nil {
				return err
			}
			return tx.Products().AdjustStock(ctx, product.ID, -sale.Quantity)
		})
		require.ErrorIs(t, err, store.ErrInsufficientStock)

		_, err = s.Sales().GetSaleByID(ctx, sale.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		p, err := s.Products().GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		require.EqualValues(t, 3, p.Stock)
	})

	t.Run("customer with sales cannot be deleted", func(t *testing.T) {
		err := s.Customers().DeleteCustomer(ctx, customer.ID)
		require.Error(t, err)
	})
}
