package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
)

type SaleService struct {
	Store store.Store
}

type SaleParams struct {
	CustomerID string
	ProductID  string
	Quantity   int64
	SoldAt     time.Time
}

func (p SaleParams) validate() error {
	if p.CustomerID == "" {
		return validationErr("customer_id is required")
	}
	if p.ProductID == "" {
		return validationErr("product_id is required")
	}
	if p.Quantity <= 0 {
		return validationErr("quantity must be positive")
	}
	return nil
}

// CreateSale records a sale and decrements the product's stock in one
// transaction. The total is snapshotted from the product's current price so
// later price changes don't rewrite history.
func (s *SaleService) CreateSale(ctx context.Context, params SaleParams) (domain.Sale, error) {
	if err := params.validate(); err != nil {
		return domain.Sale{}, err
	}

	soldAt := params.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now().UTC()
	}

	var saleID string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Customers().GetCustomerByID(ctx, params.CustomerID); err != nil {
			return err
		}
		product, err := tx.Products().GetProductByID(ctx, params.ProductID)
		if err != nil {
			return err
		}

		sale := domain.Sale{
			ID:         idx.New().String(),
			CustomerID: params.CustomerID,
			ProductID:  params.ProductID,
			Quantity:   params.Quantity,
			Total:      product.Price * float64(params.Quantity),
			SoldAt:     soldAt,
		}
		if err := tx.Sales().CreateSale(ctx, sale); err != nil {
			return err
		}
		if err := tx.Products().AdjustStock(ctx, params.ProductID, -params.Quantity); err != nil {
			return err
		}

		saleID = sale.ID
		return nil
	})
	if err != nil {
		return domain.Sale{}, err
	}

	return s.Store.Sales().GetSaleByID(ctx, saleID)
}

func (s *SaleService) GetSaleByID(ctx context.Context, id string) (domain.Sale, error) {
	return s.Store.Sales().GetSaleByID(ctx, id)
}

func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.Store.Sales().ListSales(ctx)
}

// UpdateSale edits the recorded sale without touching stock levels except
// when the quantity changes on the same product, in which case the delta is
// applied so the books stay consistent.
func (s *SaleService) UpdateSale(ctx context.Context, id string, params SaleParams) (domain.Sale, error) {
	if err := params.validate(); err != nil {
		return domain.Sale{}, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Sales().GetSaleByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Customers().GetCustomerByID(ctx, params.CustomerID); err != nil {
			return err
		}
		product, err := tx.Products().GetProductByID(ctx, params.ProductID)
		if err != nil {
			return err
		}

		// Return the old quantity to the old product, take the new quantity
		// from the new one. Same product collapses to a single delta.
		if err := tx.Products().AdjustStock(ctx, existing.ProductID, existing.Quantity); err != nil {
			return err
		}
		if err := tx.Products().AdjustStock(ctx, params.ProductID, -params.Quantity); err != nil {
			return err
		}

		existing.CustomerID = params.CustomerID
		existing.ProductID = params.ProductID
		existing.Quantity = params.Quantity
		existing.Total = product.Price * float64(params.Quantity)
		if !params.SoldAt.IsZero() {
			existing.SoldAt = params.SoldAt
		}

		return tx.Sales().UpdateSale(ctx, existing)
	})
	if err != nil {
		return domain.Sale{}, err
	}

	return s.Store.Sales().GetSaleByID(ctx, id)
}

// DeleteSale removes the sale and returns its quantity to stock.
func (s *SaleService) DeleteSale(ctx context.Context, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sale, err := tx.Sales().GetSaleByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Sales().DeleteSale(ctx, id); err != nil {
			return err
		}
		return tx.Products().AdjustStock(ctx, sale.ProductID, sale.Quantity)
	})
}
