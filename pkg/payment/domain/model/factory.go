package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingPaymentProps = errors.New("order ID and total are required to create a payment")

// CreatePaymentProps is the data needed to start a new payment attempt.
type CreatePaymentProps struct {
	OrderID    uuid.UUID
	TotalCents int64
	Method     PaymentMethod
}

// PaymentFactory builds fresh PENDING payments. Pure construction: a new
// identity, the total copied as-is, creation timestamps. No I/O.
type PaymentFactory interface {
	CreatePayment(props CreatePaymentProps) (*Payment, error)
}

func NewPaymentFactory() PaymentFactory {
	return &paymentFactory{}
}

type paymentFactory struct{}

func (f *paymentFactory) CreatePayment(props CreatePaymentProps) (*Payment, error) {
	if props.OrderID == uuid.Nil || props.TotalCents <= 0 {
		return nil, ErrMissingPaymentProps
	}

	now := time.Now().UTC()
	return &Payment{
		ID:         uuid.New(),
		OrderID:    props.OrderID,
		TotalCents: props.TotalCents,
		Method:     props.Method,
		Status:     Pending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
