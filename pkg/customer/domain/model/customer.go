package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CPF       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerRepository interface {
	Find(id uuid.UUID) (*Customer, error)
	FindByCPF(cpf string) (*Customer, error)
}
