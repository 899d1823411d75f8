package mysql

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/model"
)

const mysqlErrDuplicateEntry = 1062

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

var _ model.PaymentRepository = &PaymentRepository{}

type paymentRow struct {
	ID                uuid.UUID      `db:"id"`
	OrderID           uuid.UUID      `db:"order_id"`
	TotalCents        int64          `db:"total_cents"`
	Method            int            `db:"method"`
	Status            int            `db:"status"`
	ExternalPaymentID sql.NullString `db:"external_payment_id"`
	Active            sql.NullInt16  `db:"active"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r *PaymentRepository) ExistsWithOrderIDAndNotFailed(orderID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE order_id = ? AND status <> ?)`,
		orderID, int(model.Failed),
	)
	if err != nil {
		return false, errors.Wrap(err, "query active payments")
	}
	return exists, nil
}

// Save inserts the payment or updates it in place. The payments table holds a
// UNIQUE KEY over (order_id, active); active is 1 while the payment is
// PENDING or PAID and NULL once FAILED, so a second active payment for the
// same order is rejected by the database even when two requests raced past
// the pre-check.
func (r *PaymentRepository) Save(payment *model.Payment) error {
	row := mapPaymentToRow(payment)

	var exists bool
	if err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM payments WHERE id = ?)`, row.ID); err != nil {
		return errors.Wrap(err, "query payment by id")
	}

	if exists {
		_, err := r.db.NamedExec(`
			UPDATE payments
			SET status = :status,
			    external_payment_id = :external_payment_id,
			    active = :active,
			    updated_at = :updated_at
			WHERE id = :id`, row)
		return errors.Wrap(err, "update payment")
	}

	_, err := r.db.NamedExec(`
		INSERT INTO payments (id, order_id, total_cents, method, status, external_payment_id, active, created_at, updated_at)
		VALUES (:id, :order_id, :total_cents, :method, :status, :external_payment_id, :active, :created_at, :updated_at)`,
		row)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return model.ErrDuplicatePayment
		}
		return errors.Wrap(err, "insert payment")
	}
	return nil
}

func mapPaymentToRow(payment *model.Payment) paymentRow {
	row := paymentRow{
		ID:         payment.ID,
		OrderID:    payment.OrderID,
		TotalCents: payment.TotalCents,
		Method:     int(payment.Method),
		Status:     int(payment.Status),
		CreatedAt:  payment.CreatedAt,
		UpdatedAt:  payment.UpdatedAt,
	}
	if payment.ExternalPaymentID != "" {
		row.ExternalPaymentID = sql.NullString{String: payment.ExternalPaymentID, Valid: true}
	}
	if payment.Status != model.Failed {
		row.Active = sql.NullInt16{Int16: 1, Valid: true}
	}
	return row
}
