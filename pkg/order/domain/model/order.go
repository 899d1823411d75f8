package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound          = errors.New("order not found with given ID")
	ErrInvalidOrderTransition = errors.New("order is already in a terminal state")
	ErrOptimisticLock         = errors.New("order has been modified by another transaction")
)

type OrderStatus int

const (
	Open OrderStatus = iota
	Paid
	Canceled
)

func (s OrderStatus) String() string {
	switch s {
	case Open:
		return "OPEN"
	case Paid:
		return "PAID"
	case Canceled:
		return "CANCELED"
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the payment workflow may still act on the order.
func (s OrderStatus) IsTerminal() bool {
	return s == Paid || s == Canceled
}

type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Status     OrderStatus
	Items      []Item
	TotalCents int64
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Item struct {
	ID             uuid.UUID
	ProductCode    string
	ProductName    string
	UnitPriceCents int64
	Quantity       int
}

// MarkAsPaid moves the order to PAID. Orders that already reached a terminal
// state are never reprocessed by the payment workflow.
func (o *Order) MarkAsPaid() error {
	if o.Status.IsTerminal() {
		return ErrInvalidOrderTransition
	}
	o.Status = Paid
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkAsCanceled is the compensating transition used when charging the order
// failed irrecoverably.
func (o *Order) MarkAsCanceled() error {
	if o.Status.IsTerminal() {
		return ErrInvalidOrderTransition
	}
	o.Status = Canceled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// RecalculateTotal derives the total from the line items.
func (o *Order) RecalculateTotal() {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	o.TotalCents = total
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	Update(order *Order) error
}
