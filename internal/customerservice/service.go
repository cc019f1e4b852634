// Package customerservice manages business logic layer of customers.
package customerservice

import (
	"context"

	"github.com/go-finbook/finbook/internal/domain"
)

// Repo provides data access layer interface needed by customer service layer.
type Repo interface {
	Create(ctx context.Context, cpf, name string) (domain.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	UpdateName(ctx context.Context, cpf, name string) (domain.Customer, error)
	Delete(ctx context.Context, cpf string) error
}

// Service facilitates customer service layer logic.
type Service struct {
	repo Repo
}

// New returns customer service struct to manage customer bussines logic.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

// Create registers a customer with an empty statement for the given cpf.
func (s *Service) Create(ctx context.Context, cpf, name string) (domain.Customer, error) {
	customer, err := s.repo.Create(ctx, cpf, name)
	if err != nil {
		return customer, err
	}

	return customer, nil
}

// VerifyCPF resolves a claimed cpf to the customer it identifies. Every
// operation that needs a customer runs through it before executing.
func (s *Service) VerifyCPF(ctx context.Context, cpf string) (domain.Customer, error) {
	customer, err := s.repo.GetByCPF(ctx, cpf)
	if err != nil {
		return customer, err
	}

	return customer, nil
}

// List returns all registered customers.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// UpdateName renames the customer registered for the given cpf.
func (s *Service) UpdateName(ctx context.Context, cpf, name string) (domain.Customer, error) {
	customer, err := s.repo.UpdateName(ctx, cpf, name)
	if err != nil {
		return customer, err
	}

	return customer, nil
}

// Delete removes the customer registered for the given cpf along with its
// statement.
func (s *Service) Delete(ctx context.Context, cpf string) error {
	return s.repo.Delete(ctx, cpf)
}
