package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custdesk/custdesk/internal/api/domain"
	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/custdesk/custdesk/pkg/idx"
)

var (
	// ErrValidation marks rejected input. The wrapped message names the
	// offending field.
	ErrValidation = errors.New("service: validation failed")

	// ErrDuplicateEmail signals a customer with the same email on file.
	ErrDuplicateEmail = errors.New("service: email already exists")
)

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CustomerService owns the /api/customers resource.
type CustomerService struct {
	store store.Store
}

func NewCustomerService(st store.Store) *CustomerService {
	return &CustomerService{store: st}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	return s.store.Customers().GetCustomerByID(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (domain.Customer, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return domain.Customer{}, err
	}

	c := domain.Customer{
		ID:    idx.New().String(),
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}

	if err := s.store.Customers().CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Customer{}, ErrDuplicateEmail
		}
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	return s.store.Customers().GetCustomerByID(ctx, c.ID)
}

func (s *CustomerService) Update(ctx context.Context, id string, in CustomerInput) (domain.Customer, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return domain.Customer{}, err
	}

	err = s.store.Customers().UpdateCustomer(ctx, domain.Customer{
		ID:    id,
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Customer{}, ErrDuplicateEmail
		}
		return domain.Customer{}, err
	}

	return s.store.Customers().GetCustomerByID(ctx, id)
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.store.Customers().DeleteCustomer(ctx, id)
}

func normalizeInput(in CustomerInput) (CustomerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return in, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return in, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	return in, nil
}
