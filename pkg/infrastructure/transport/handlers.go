package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/common/domain"
	customermodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/customer/domain/model"
	ordermodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
	orderservice "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/service"
	paymentmodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/model"
	paymentservice "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/service"
)

const userIDHeader = "X-User-ID"

type Handler struct {
	orders    orderservice.OrderService
	payments  paymentservice.PaymentService
	customers customermodel.CustomerRepository
}

func NewHandler(
	orders orderservice.OrderService,
	payments paymentservice.PaymentService,
	customers customermodel.CustomerRepository,
) *Handler {
	return &Handler{orders: orders, payments: payments, customers: customers}
}

func Router(h *Handler) http.Handler {
	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	s.HandleFunc("/orders/{ID}", h.showOrder).Methods(http.MethodGet)
	s.HandleFunc("/payments", h.createPayment).Methods(http.MethodPost)

	return logMiddleware(r)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	customer, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var request createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, errBadRequestBody)
		return
	}

	items := make([]orderservice.NewOrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, orderservice.NewOrderItem{
			ProductCode:    item.ProductCode,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(customer.ID, items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

func (h *Handler) showOrder(w http.ResponseWriter, r *http.Request) {
	customer, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["ID"])
	if err != nil {
		writeError(w, ordermodel.ErrOrderNotFound)
		return
	}

	order, err := h.orders.GetOrder(orderID, customer.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	customer, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var request createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, errBadRequestBody)
		return
	}

	orderID, err := uuid.Parse(request.OrderID)
	if err != nil {
		writeError(w, ordermodel.ErrOrderNotFound)
		return
	}

	method, err := paymentmodel.ParsePaymentMethod(request.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}

	input := paymentservice.CreatePaymentInput{
		OrderID: orderID,
		UserID:  customer.ID,
		Method:  method,
	}
	if request.CardData != nil {
		input.CardData = &paymentservice.CardData{
			Number:           request.CardData.Number,
			Expiration:       request.CardData.Expiration,
			VerificationCode: request.CardData.VerificationCode,
		}
	}

	output, err := h.payments.CreatePayment(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapPaymentToResponse(output))
}

// authenticate resolves the requesting customer from the X-User-ID header.
// The real identity provider sits in front of this service; here only the
// customer lookup is enforced.
func (h *Handler) authenticate(r *http.Request) (*customermodel.Customer, error) {
	userID, err := uuid.Parse(r.Header.Get(userIDHeader))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	customer, err := h.customers.Find(userID)
	if err != nil {
		if errors.Is(err, customermodel.ErrCustomerNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return customer, nil
}

var errBadRequestBody = errors.New("malformed request body")

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, paymentmodel.ErrUnknownPaymentMethod),
		errors.Is(err, orderservice.ErrOrderIsEmpty),
		errors.Is(err, orderservice.ErrNegativePrice),
		errors.Is(err, orderservice.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, paymentservice.ErrCardDataRequired):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, ordermodel.ErrOrderNotFound),
		errors.Is(err, customermodel.ErrCustomerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, paymentmodel.ErrDuplicatePayment):
		status = http.StatusConflict
	case errors.Is(err, paymentservice.ErrPaymentProcessingFailed):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}

	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("write response body")
	}
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
