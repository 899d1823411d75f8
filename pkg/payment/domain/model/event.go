package model

import "github.com/google/uuid"

type PaymentInitiated struct {
	PaymentID uuid.UUID
	OrderID   uuid.UUID
	Method    PaymentMethod
}

func (e PaymentInitiated) Type() string { return "PaymentInitiated" }

type PaymentConfirmed struct {
	PaymentID         uuid.UUID
	OrderID           uuid.UUID
	ExternalPaymentID string
	TotalCents        int64
}

func (e PaymentConfirmed) Type() string { return "PaymentConfirmed" }

type PaymentFailed struct {
	PaymentID uuid.UUID
	OrderID   uuid.UUID
	Reason    string
}

func (e PaymentFailed) Type() string { return "PaymentFailed" }
