package service

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
)

type ProductService struct {
	Store store.Store
}

type ProductParams struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
}

func (p ProductParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationErr("name is required")
	}
	if p.Price < 0 {
		return validationErr("price must not be negative")
	}
	if p.Stock < 0 {
		return validationErr("stock must not be negative")
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, params ProductParams) (domain.Product, error) {
	if err := params.validate(); err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:          idx.New().String(),
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		Price:       params.Price,
		Stock:       params.Stock,
	}
	if err := s.Store.Products().CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return s.Store.Products().GetProductByID(ctx, product.ID)
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	return s.Store.Products().GetProductByID(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Store.Products().ListProducts(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, params ProductParams) (domain.Product, error) {
	if err := params.validate(); err != nil {
		return domain.Product{}, err
	}

	product, err := s.Store.Products().GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	product.Name = strings.TrimSpace(params.Name)
	product.Description = strings.TrimSpace(params.Description)
	product.Price = params.Price
	product.Stock = params.Stock

	if err := s.Store.Products().UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return s.Store.Products().GetProductByID(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.Store.Products().DeleteProduct(ctx, id)
}
