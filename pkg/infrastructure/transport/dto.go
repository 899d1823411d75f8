package transport

import (
	ordermodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
	paymentservice "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/service"
)

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductCode    string `json:"product_code"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	TotalCents int64               `json:"total_cents"`
	Items      []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ProductCode    string `json:"product_code"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type createPaymentRequest struct {
	OrderID       string           `json:"order_id"`
	PaymentMethod string           `json:"payment_method"`
	CardData      *cardDataRequest `json:"card_data,omitempty"`
}

type cardDataRequest struct {
	Number           string `json:"number"`
	Expiration       string `json:"expiration"`
	VerificationCode string `json:"verification_code"`
}

type paymentResponse struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	PaymentData *pixDataResponse `json:"payment_data,omitempty"`
}

type pixDataResponse struct {
	QRCode     string `json:"qr_code"`
	QRCodeText string `json:"qr_code_text"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func mapOrderToResponse(order *ordermodel.Order) orderResponse {
	response := orderResponse{
		ID:         order.ID.String(),
		Status:     order.Status.String(),
		TotalCents: order.TotalCents,
		Items:      make([]orderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, orderItemResponse{
			ProductCode:    item.ProductCode,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	return response
}

func mapPaymentToResponse(output *paymentservice.CreatePaymentOutput) paymentResponse {
	response := paymentResponse{
		ID:     output.ID.String(),
		Status: output.Status.String(),
	}
	if output.PaymentData != nil {
		response.PaymentData = &pixDataResponse{
			QRCode:     output.PaymentData.QRCode,
			QRCodeText: output.PaymentData.QRCodeText,
		}
	}
	return response
}
