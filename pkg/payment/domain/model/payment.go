package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicatePayment         = errors.New("a pending or paid payment already exists for the given order ID")
	ErrInvalidPaymentTransition = errors.New("payment is not in a pending state")
	ErrPaymentNotFound          = errors.New("payment not found with given ID")
	ErrUnknownPaymentMethod     = errors.New("unknown payment method")
)

type PaymentStatus int

const (
	Pending PaymentStatus = iota
	Paid
	Failed
)

func (s PaymentStatus) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Paid:
		return "PAID"
	case Failed:
		return "FAILED"
	}
	return "UNKNOWN"
}

type PaymentMethod int

const (
	Pix PaymentMethod = iota
	CreditCard
	DebitCard
	Voucher
)

func (m PaymentMethod) String() string {
	switch m {
	case Pix:
		return "PIX"
	case CreditCard:
		return "CREDIT_CARD"
	case DebitCard:
		return "DEBIT_CARD"
	case Voucher:
		return "VOUCHER"
	}
	return "UNKNOWN"
}

// ParsePaymentMethod maps the wire representation back to a method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "PIX":
		return Pix, nil
	case "CREDIT_CARD":
		return CreditCard, nil
	case "DEBIT_CARD":
		return DebitCard, nil
	case "VOUCHER":
		return Voucher, nil
	}
	return 0, ErrUnknownPaymentMethod
}

// IsCardBased reports whether the method settles synchronously and requires
// card data on the charge request.
func (m PaymentMethod) IsCardBased() bool {
	return m == CreditCard || m == DebitCard || m == Voucher
}

// Payment is a single payment attempt against an order. The total is copied
// from the order at creation time and never recomputed.
type Payment struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	TotalCents        int64
	Method            PaymentMethod
	Status            PaymentStatus
	ExternalPaymentID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SetExternalPaymentID records the gateway-assigned reference.
func (p *Payment) SetExternalPaymentID(externalID string) {
	p.ExternalPaymentID = externalID
	p.UpdatedAt = time.Now().UTC()
}

// MarkAsPaid moves the payment from PENDING to PAID. Anything else is a
// double-processing bug and is rejected.
func (p *Payment) MarkAsPaid() error {
	if p.Status != Pending {
		return ErrInvalidPaymentTransition
	}
	p.Status = Paid
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkAsFailed moves the payment from PENDING to FAILED.
func (p *Payment) MarkAsFailed() error {
	if p.Status != Pending {
		return ErrInvalidPaymentTransition
	}
	p.Status = Failed
	p.UpdatedAt = time.Now().UTC()
	return nil
}

type PaymentRepository interface {
	// ExistsWithOrderIDAndNotFailed reports whether the order already has a
	// payment in PENDING or PAID status.
	ExistsWithOrderIDAndNotFailed(orderID uuid.UUID) (bool, error)
	Save(payment *Payment) error
}
