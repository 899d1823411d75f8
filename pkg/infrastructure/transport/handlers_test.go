package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customermodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/customer/domain/model"
	ordermodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
	orderservice "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/service"
	paymentmodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/model"
	paymentservice "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/service"
)

type stubOrderService struct {
	order *ordermodel.Order
	err   error
}

func (s *stubOrderService) CreateOrder(uuid.UUID, []orderservice.NewOrderItem) (*ordermodel.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetOrder(uuid.UUID, uuid.UUID) (*ordermodel.Order, error) {
	return s.order, s.err
}

type stubPaymentService struct {
	output *paymentservice.CreatePaymentOutput
	err    error
}

func (s *stubPaymentService) CreatePayment(context.Context, paymentservice.CreatePaymentInput) (*paymentservice.CreatePaymentOutput, error) {
	return s.output, s.err
}

type stubCustomerRepository struct {
	customer *customermodel.Customer
}

func (s *stubCustomerRepository) Find(id uuid.UUID) (*customermodel.Customer, error) {
	if s.customer == nil || s.customer.ID != id {
		return nil, customermodel.ErrCustomerNotFound
	}
	return s.customer, nil
}

func (s *stubCustomerRepository) FindByCPF(string) (*customermodel.Customer, error) {
	return nil, customermodel.ErrCustomerNotFound
}

func newTestServer(orders *stubOrderService, payments *stubPaymentService, customer *customermodel.Customer) http.Handler {
	return Router(NewHandler(orders, payments, &stubCustomerRepository{customer: customer}))
}

func knownCustomer() *customermodel.Customer {
	return &customermodel.Customer{
		ID:        uuid.New(),
		Name:      "John Doe",
		Email:     "john@example.com",
		CPF:       "12345678901",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestCreatePaymentEndpoint(t *testing.T) {
	customer := knownCustomer()

	t.Run("pix payment created", func(t *testing.T) {
		paymentID := uuid.New()
		payments := &stubPaymentService{
			output: &paymentservice.CreatePaymentOutput{
				ID:     paymentID,
				Status: paymentmodel.Pending,
				PaymentData: &paymentservice.PixPaymentData{
					QRCode:     "qr-code-url",
					QRCodeText: "qr-code-text",
				},
			},
		}
		server := newTestServer(&stubOrderService{}, payments, customer)

		body := `{"order_id":"` + uuid.NewString() + `","payment_method":"PIX"}`
		request := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
		request.Header.Set(userIDHeader, customer.ID.String())
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response paymentResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, paymentID.String(), response.ID)
		assert.Equal(t, "PENDING", response.Status)
		require.NotNil(t, response.PaymentData)
		assert.Equal(t, "qr-code-url", response.PaymentData.QRCode)
	})

	t.Run("missing user header", func(t *testing.T) {
		server := newTestServer(&stubOrderService{}, &stubPaymentService{}, customer)

		request := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{}`))
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"duplicate payment", paymentmodel.ErrDuplicatePayment, http.StatusConflict},
			{"order not found", ordermodel.ErrOrderNotFound, http.StatusNotFound},
			{"card data required", paymentservice.ErrCardDataRequired, http.StatusUnprocessableEntity},
			{"gateway failure", paymentservice.ErrPaymentProcessingFailed, http.StatusBadGateway},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				server := newTestServer(&stubOrderService{}, &stubPaymentService{err: tc.err}, customer)

				body := `{"order_id":"` + uuid.NewString() + `","payment_method":"PIX"}`
				request := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
				request.Header.Set(userIDHeader, customer.ID.String())
				recorder := httptest.NewRecorder()

				server.ServeHTTP(recorder, request)

				assert.Equal(t, tc.status, recorder.Code)
			})
		}
	})

	t.Run("unknown payment method", func(t *testing.T) {
		server := newTestServer(&stubOrderService{}, &stubPaymentService{}, customer)

		body := `{"order_id":"` + uuid.NewString() + `","payment_method":"BOLETO"}`
		request := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
		request.Header.Set(userIDHeader, customer.ID.String())
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestShowOrderEndpoint(t *testing.T) {
	customer := knownCustomer()
	order := &ordermodel.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Status:     ordermodel.Open,
		TotalCents: 4730,
		Items: []ordermodel.Item{
			{ID: uuid.New(), ProductCode: "BURGER-01", ProductName: "Cheeseburger", UnitPriceCents: 1990, Quantity: 2},
			{ID: uuid.New(), ProductCode: "SODA-02", ProductName: "Guarana", UnitPriceCents: 750, Quantity: 1},
		},
	}
	server := newTestServer(&stubOrderService{order: order}, &stubPaymentService{}, customer)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	request.Header.Set(userIDHeader, customer.ID.String())
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response orderResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, order.ID.String(), response.ID)
	assert.Equal(t, "OPEN", response.Status)
	assert.Equal(t, int64(4730), response.TotalCents)
	assert.Len(t, response.Items, 2)
}
