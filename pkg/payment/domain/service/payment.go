package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/common/domain"
	ordermodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/model"
)

var (
	ErrCardDataRequired = errors.New("card data is required for card-based payment methods")

	// ErrPaymentProcessingFailed wraps the gateway error after the
	// compensating transitions have been applied.
	ErrPaymentProcessingFailed = errors.New("there was an error processing the payment")
)

// CardData is the card information required by the card-family methods.
type CardData struct {
	Number           string
	Expiration       string
	VerificationCode string
}

type CreatePaymentInput struct {
	OrderID  uuid.UUID
	UserID   uuid.UUID
	Method   model.PaymentMethod
	CardData *CardData
}

// PixPaymentData is returned for PIX payments only: the payer completes the
// charge through the QR code after this workflow finishes.
type PixPaymentData struct {
	QRCode     string
	QRCodeText string
}

type CreatePaymentOutput struct {
	ID          uuid.UUID
	Status      model.PaymentStatus
	PaymentData *PixPaymentData
}

type PaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error)
}

func NewPaymentService(
	gateway PaymentGateway,
	paymentRepo model.PaymentRepository,
	orderRepo ordermodel.OrderRepository,
	factory model.PaymentFactory,
	dispatcher domain.EventDispatcher,
	gatewayTimeout time.Duration,
) PaymentService {
	return &paymentService{
		gateway:        gateway,
		paymentRepo:    paymentRepo,
		orderRepo:      orderRepo,
		factory:        factory,
		dispatcher:     dispatcher,
		gatewayTimeout: gatewayTimeout,
	}
}

type paymentService struct {
	gateway        PaymentGateway
	paymentRepo    model.PaymentRepository
	orderRepo      ordermodel.OrderRepository
	factory        model.PaymentFactory
	dispatcher     domain.EventDispatcher
	gatewayTimeout time.Duration
}

// CreatePayment runs the full payment attempt for an order: duplicate guard,
// ownership check, gateway charge and reconciliation of the outcome onto the
// payment and the order. Steps before the gateway call fail fast without any
// mutation; a gateway failure triggers the compensating transitions before
// the error is re-raised.
func (s *paymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	exists, err := s.paymentRepo.ExistsWithOrderIDAndNotFailed(input.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicatePayment
	}

	order, err := s.orderRepo.Find(input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	if input.Method.IsCardBased() && input.CardData == nil {
		return nil, ErrCardDataRequired
	}

	payment, err := s.factory.CreatePayment(model.CreatePaymentProps{
		OrderID:    order.ID,
		TotalCents: order.TotalCents,
		Method:     input.Method,
	})
	if err != nil {
		return nil, err
	}

	externalID, pixData, err := s.charge(ctx, payment, input.CardData)
	if err != nil {
		return nil, s.compensate(payment, order, err)
	}

	payment.SetExternalPaymentID(externalID)

	if payment.Method == model.Pix {
		// PIX settles asynchronously: the payment stays PENDING and the
		// order is left untouched until the confirmation arrives.
		if err := s.paymentRepo.Save(payment); err != nil {
			return nil, err
		}

		_ = s.dispatcher.Dispatch(model.PaymentInitiated{
			PaymentID: payment.ID,
			OrderID:   order.ID,
			Method:    payment.Method,
		})

		return &CreatePaymentOutput{
			ID:          payment.ID,
			Status:      payment.Status,
			PaymentData: pixData,
		}, nil
	}

	if err := payment.MarkAsPaid(); err != nil {
		return nil, err
	}
	if err := order.MarkAsPaid(); err != nil {
		return nil, err
	}

	if err := s.persistOutcome(payment, order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.PaymentConfirmed{
		PaymentID:         payment.ID,
		OrderID:           order.ID,
		ExternalPaymentID: externalID,
		TotalCents:        payment.TotalCents,
	})
	_ = s.dispatcher.Dispatch(ordermodel.OrderPaid{OrderID: order.ID, PaymentID: payment.ID})

	return &CreatePaymentOutput{ID: payment.ID, Status: payment.Status}, nil
}

// charge dispatches to the gateway operation matching the payment method. The
// call is bounded by the configured timeout; a timeout is treated like any
// other gateway failure.
func (s *paymentService) charge(ctx context.Context, payment *model.Payment, card *CardData) (string, *PixPaymentData, error) {
	ctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	switch payment.Method {
	case model.Pix:
		result, err := s.gateway.CreatePixPayment(ctx, PixPaymentRequest{AmountCents: payment.TotalCents})
		if err != nil {
			return "", nil, err
		}
		return result.ID, &PixPaymentData{QRCode: result.QRCode, QRCodeText: result.QRCodeText}, nil
	case model.CreditCard, model.DebitCard, model.Voucher:
		request := CardPaymentRequest{
			AmountCents:          payment.TotalCents,
			CardNumber:           card.Number,
			CardExpirationDate:   card.Expiration,
			CardVerificationCode: card.VerificationCode,
		}

		var result *CardPaymentResult
		var err error
		switch payment.Method {
		case model.CreditCard:
			result, err = s.gateway.CreateCreditCardPayment(ctx, request)
		case model.DebitCard:
			result, err = s.gateway.CreateDebitCardPayment(ctx, request)
		default:
			result, err = s.gateway.CreateVoucherPayment(ctx, request)
		}
		if err != nil {
			return "", nil, err
		}
		return result.ID, nil, nil
	}

	return "", nil, model.ErrUnknownPaymentMethod
}

// compensate records the failed attempt and cancels the order so a failed
// external charge never leaves the order in an ambiguous pending state. The
// original gateway error is preserved in the returned error.
func (s *paymentService) compensate(payment *model.Payment, order *ordermodel.Order, cause error) error {
	if err := payment.MarkAsFailed(); err != nil {
		return err
	}
	if err := order.MarkAsCanceled(); err != nil {
		return err
	}

	if err := s.persistOutcome(payment, order); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.PaymentFailed{
		PaymentID: payment.ID,
		OrderID:   order.ID,
		Reason:    cause.Error(),
	})
	_ = s.dispatcher.Dispatch(ordermodel.OrderCanceled{OrderID: order.ID, Reason: cause.Error()})

	return fmt.Errorf("%w: %s", ErrPaymentProcessingFailed, cause)
}

// persistOutcome writes the mutated entities back, payment first, then the
// order with its version bumped for the optimistic-lock check.
func (s *paymentService) persistOutcome(payment *model.Payment, order *ordermodel.Order) error {
	if err := s.paymentRepo.Save(payment); err != nil {
		return err
	}

	order.Version++
	return s.orderRepo.Update(order)
}
