package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/service"
)

// Client talks to the external payment provider over HTTP. Timeouts are
// enforced by the caller through the request context.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

var _ service.PaymentGateway = &Client{}

type pixChargeRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

type pixChargeResponse struct {
	ID         string `json:"id"`
	QRCode     string `json:"qr_code"`
	QRCodeText string `json:"qr_code_text"`
}

type cardChargeRequest struct {
	AmountCents          int64  `json:"amount_cents"`
	CardNumber           string `json:"card_number"`
	CardExpirationDate   string `json:"card_expiration_date"`
	CardVerificationCode string `json:"card_verification_code"`
}

type cardChargeResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) CreatePixPayment(ctx context.Context, request service.PixPaymentRequest) (*service.PixPaymentResult, error) {
	var response pixChargeResponse
	err := c.post(ctx, "/v1/payments/pix", pixChargeRequest{AmountCents: request.AmountCents}, &response)
	if err != nil {
		return nil, err
	}
	return &service.PixPaymentResult{
		ID:         response.ID,
		QRCode:     response.QRCode,
		QRCodeText: response.QRCodeText,
	}, nil
}

func (c *Client) CreateCreditCardPayment(ctx context.Context, request service.CardPaymentRequest) (*service.CardPaymentResult, error) {
	return c.cardCharge(ctx, "/v1/payments/credit-card", request)
}

func (c *Client) CreateDebitCardPayment(ctx context.Context, request service.CardPaymentRequest) (*service.CardPaymentResult, error) {
	return c.cardCharge(ctx, "/v1/payments/debit-card", request)
}

func (c *Client) CreateVoucherPayment(ctx context.Context, request service.CardPaymentRequest) (*service.CardPaymentResult, error) {
	return c.cardCharge(ctx, "/v1/payments/voucher", request)
}

func (c *Client) cardCharge(ctx context.Context, path string, request service.CardPaymentRequest) (*service.CardPaymentResult, error) {
	payload := cardChargeRequest{
		AmountCents:          request.AmountCents,
		CardNumber:           request.CardNumber,
		CardExpirationDate:   request.CardExpirationDate,
		CardVerificationCode: request.CardVerificationCode,
	}

	var response cardChargeResponse
	if err := c.post(ctx, path, payload, &response); err != nil {
		return nil, err
	}
	return &service.CardPaymentResult{ID: response.ID}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode gateway request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build gateway request")
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-API-Key", c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return errors.Wrap(err, "call payment gateway")
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return errors.New(gatewayErrorMessage(response))
	}

	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return errors.Wrap(err, "decode gateway response")
	}
	return nil
}

func gatewayErrorMessage(response *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(response.Body, 4096))
	if err == nil {
		var parsed errorResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			return fmt.Sprintf("gateway returned status %d: %s", response.StatusCode, parsed.Message)
		}
	}
	return fmt.Sprintf("gateway returned status %d", response.StatusCode)
}
