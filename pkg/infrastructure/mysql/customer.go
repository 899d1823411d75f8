package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/customer/domain/model"
)

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ model.CustomerRepository = &CustomerRepository{}

type customerRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CPF       string    `db:"cpf"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *CustomerRepository) Find(id uuid.UUID) (*model.Customer, error) {
	var row customerRow
	err := r.db.Get(&row, `SELECT id, name, email, cpf, created_at, updated_at FROM customers WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query customer")
	}
	return mapCustomerToDomain(row), nil
}

func (r *CustomerRepository) FindByCPF(cpf string) (*model.Customer, error) {
	var row customerRow
	err := r.db.Get(&row, `SELECT id, name, email, cpf, created_at, updated_at FROM customers WHERE cpf = ?`, cpf)
	if err == sql.ErrNoRows {
		return nil, model.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query customer by cpf")
	}
	return mapCustomerToDomain(row), nil
}

func mapCustomerToDomain(row customerRow) *model.Customer {
	return &model.Customer{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CPF:       row.CPF,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
