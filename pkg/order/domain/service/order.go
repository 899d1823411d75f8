package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/common/domain"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
)

var (
	ErrOrderIsEmpty    = errors.New("cannot create an empty order")
	ErrNegativePrice   = errors.New("item price cannot be negative")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
)

// NewOrderItem carries the line-item data for an order being created.
type NewOrderItem struct {
	ProductCode    string
	ProductName    string
	UnitPriceCents int64
	Quantity       int
}

type OrderService interface {
	CreateOrder(customerID uuid.UUID, items []NewOrderItem) (*model.Order, error)
	GetOrder(orderID, customerID uuid.UUID) (*model.Order, error)
}

func NewOrderService(repo model.OrderRepository, dispatcher domain.EventDispatcher) OrderService {
	return &orderService{repo: repo, dispatcher: dispatcher}
}

type orderService struct {
	repo       model.OrderRepository
	dispatcher domain.EventDispatcher
}

func (s *orderService) CreateOrder(customerID uuid.UUID, items []NewOrderItem) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrOrderIsEmpty
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:         orderID,
		CustomerID: customerID,
		Status:     model.Open,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, item := range items {
		if item.UnitPriceCents < 0 {
			return nil, ErrNegativePrice
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		itemID, err := s.repo.NextID()
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, model.Item{
			ID:             itemID,
			ProductCode:    item.ProductCode,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	order.RecalculateTotal()

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderCreated{
		OrderID:    orderID,
		CustomerID: customerID,
		TotalCents: order.TotalCents,
	})

	return order, nil
}

func (s *orderService) GetOrder(orderID, customerID uuid.UUID) (*model.Order, error) {
	order, err := s.repo.Find(orderID)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != customerID {
		return nil, domain.ErrUnauthorized
	}

	return order, nil
}
