package model

import "github.com/google/uuid"

type OrderCreated struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	TotalCents int64
}

func (e OrderCreated) Type() string { return "OrderCreated" }

type OrderPaid struct {
	OrderID   uuid.UUID
	PaymentID uuid.UUID
}

func (e OrderPaid) Type() string { return "OrderPaid" }

type OrderCanceled struct {
	OrderID uuid.UUID
	Reason  string
}

func (e OrderCanceled) Type() string { return "OrderCanceled" }
