// Package domain provides defenitions of all entities.
package domain

import "errors"

var (
	// ErrCustomerAlreadyExists indicates that the given cpf is already registered.
	ErrCustomerAlreadyExists = errors.New("Customer already exists!")
	// ErrCustomerNotFound indicates that no customer is registered for the given cpf.
	ErrCustomerNotFound = errors.New("Customer not found")
)

// Customer holds identity data plus the ordered statement recorded against it.
type Customer struct {
	ID        string  `json:"id"`
	CPF       string  `json:"cpf"`
	Name      string  `json:"name"`
	Statement []Entry `json:"statement"`
}
