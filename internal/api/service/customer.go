package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
)

type CustomerService struct {
	Store store.Store
}

type CustomerParams struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

func (p CustomerParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationErr("name is required")
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return validationErr("email is not a valid address")
		}
	}
	return nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, params CustomerParams) (domain.Customer, error) {
	if err := params.validate(); err != nil {
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		ID:      idx.New().String(),
		Name:    strings.TrimSpace(params.Name),
		Email:   strings.TrimSpace(params.Email),
		Address: strings.TrimSpace(params.Address),
		Phone:   strings.TrimSpace(params.Phone),
	}
	if err := s.Store.Customers().CreateCustomer(ctx, customer); err != nil {
		return domain.Customer{}, err
	}
	return s.Store.Customers().GetCustomerByID(ctx, customer.ID)
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	return s.Store.Customers().GetCustomerByID(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.Store.Customers().ListCustomers(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, params CustomerParams) (domain.Customer, error) {
	if err := params.validate(); err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.Store.Customers().GetCustomerByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer.Name = strings.TrimSpace(params.Name)
	customer.Email = strings.TrimSpace(params.Email)
	customer.Address = strings.TrimSpace(params.Address)
	customer.Phone = strings.TrimSpace(params.Phone)

	if err := s.Store.Customers().UpdateCustomer(ctx, customer); err != nil {
		return domain.Customer{}, err
	}
	return s.Store.Customers().GetCustomerByID(ctx, id)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.Store.Customers().DeleteCustomer(ctx, id)
}
