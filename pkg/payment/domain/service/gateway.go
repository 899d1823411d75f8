package service

import "context"

// PixPaymentRequest carries the charge data for an asynchronous PIX payment.
type PixPaymentRequest struct {
	AmountCents int64
}

// PixPaymentResult is the gateway response for a PIX charge. Confirmation of
// the payment itself arrives later, out of band.
type PixPaymentResult struct {
	ID         string
	QRCode     string
	QRCodeText string
}

// CardPaymentRequest carries the charge data for the synchronous card-family
// methods (credit, debit, voucher).
type CardPaymentRequest struct {
	AmountCents          int64
	CardNumber           string
	CardExpirationDate   string
	CardVerificationCode string
}

type CardPaymentResult struct {
	ID string
}

// PaymentGateway is the external payment provider. Any of the calls may fail
// for network, validation or decline reasons; such failures are recoverable
// errors, never panics.
type PaymentGateway interface {
	CreatePixPayment(ctx context.Context, request PixPaymentRequest) (*PixPaymentResult, error)
	CreateCreditCardPayment(ctx context.Context, request CardPaymentRequest) (*CardPaymentResult, error)
	CreateDebitCardPayment(ctx context.Context, request CardPaymentRequest) (*CardPaymentResult, error)
	CreateVoucherPayment(ctx context.Context, request CardPaymentRequest) (*CardPaymentResult, error)
}
