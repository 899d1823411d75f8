package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/common/domain"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/service"
)

func setup(t *testing.T) (service.OrderService, *mockOrderRepository, *mockEventDispatcher) {
	repo := &mockOrderRepository{store: make(map[uuid.UUID]*model.Order)}
	dispatcher := &mockEventDispatcher{}
	orderService := service.NewOrderService(repo, dispatcher)
	return orderService, repo, dispatcher
}

func TestCreateOrder(t *testing.T) {
	orderService, repo, dispatcher := setup(t)
	customerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		order, err := orderService.CreateOrder(customerID, []service.NewOrderItem{
			{ProductCode: "BURGER-01", ProductName: "Cheeseburger", UnitPriceCents: 1990, Quantity: 2},
			{ProductCode: "SODA-02", ProductName: "Guarana", UnitPriceCents: 750, Quantity: 1},
		})

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, model.Open, order.Status)
		assert.Equal(t, customerID, order.CustomerID)
		assert.Equal(t, 1, order.Version)
		assert.Len(t, order.Items, 2)
		assert.Equal(t, int64(1990*2+750), order.TotalCents)

		saved, ok := repo.store[order.ID]
		require.True(t, ok)
		assert.Equal(t, order.TotalCents, saved.TotalCents)

		require.Len(t, dispatcher.events, 1)
		event, ok := dispatcher.events[0].(model.OrderCreated)
		require.True(t, ok)
		assert.Equal(t, order.TotalCents, event.TotalCents)
	})

	t.Run("fail on empty order", func(t *testing.T) {
		_, err := orderService.CreateOrder(customerID, nil)
		assert.ErrorIs(t, err, service.ErrOrderIsEmpty)
	})

	t.Run("fail on negative price", func(t *testing.T) {
		_, err := orderService.CreateOrder(customerID, []service.NewOrderItem{
			{ProductCode: "BURGER-01", ProductName: "Cheeseburger", UnitPriceCents: -1, Quantity: 1},
		})
		assert.ErrorIs(t, err, service.ErrNegativePrice)
	})

	t.Run("fail on non-positive quantity", func(t *testing.T) {
		_, err := orderService.CreateOrder(customerID, []service.NewOrderItem{
			{ProductCode: "BURGER-01", ProductName: "Cheeseburger", UnitPriceCents: 1990, Quantity: 0},
		})
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	})
}

func TestGetOrder(t *testing.T) {
	orderService, _, _ := setup(t)
	customerID := uuid.New()
	order, err := orderService.CreateOrder(customerID, []service.NewOrderItem{
		{ProductCode: "BURGER-01", ProductName: "Cheeseburger", UnitPriceCents: 1990, Quantity: 1},
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		found, err := orderService.GetOrder(order.ID, customerID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("fail on unknown order", func(t *testing.T) {
		_, err := orderService.GetOrder(uuid.New(), customerID)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})

	t.Run("fail on foreign order", func(t *testing.T) {
		_, err := orderService.GetOrder(order.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestOrderTransitions(t *testing.T) {
	newOpenOrder := func() *model.Order {
		return &model.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: model.Open}
	}

	t.Run("open to paid", func(t *testing.T) {
		order := newOpenOrder()
		require.NoError(t, order.MarkAsPaid())
		assert.Equal(t, model.Paid, order.Status)
	})

	t.Run("open to canceled", func(t *testing.T) {
		order := newOpenOrder()
		require.NoError(t, order.MarkAsCanceled())
		assert.Equal(t, model.Canceled, order.Status)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		paid := newOpenOrder()
		require.NoError(t, paid.MarkAsPaid())
		assert.ErrorIs(t, paid.MarkAsPaid(), model.ErrInvalidOrderTransition)
		assert.ErrorIs(t, paid.MarkAsCanceled(), model.ErrInvalidOrderTransition)

		canceled := newOpenOrder()
		require.NoError(t, canceled.MarkAsCanceled())
		assert.ErrorIs(t, canceled.MarkAsPaid(), model.ErrInvalidOrderTransition)
	})
}

func TestOptimisticLockInRepository(t *testing.T) {
	_, repo, _ := setup(t)
	order := &model.Order{ID: uuid.New(), Version: 1}
	require.NoError(t, repo.Create(order))

	order.Version++
	require.NoError(t, repo.Update(order))
	assert.Equal(t, 2, repo.store[order.ID].Version)

	err := repo.Update(order)
	assert.ErrorIs(t, err, model.ErrOptimisticLock)
}

var _ model.OrderRepository = &mockOrderRepository{}

type mockOrderRepository struct {
	store map[uuid.UUID]*model.Order
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (m *mockOrderRepository) Create(order *model.Order) error {
	val := *order
	m.store[order.ID] = &val
	return nil
}

func (m *mockOrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	order, ok := m.store[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	val := *order
	return &val, nil
}

func (m *mockOrderRepository) Update(order *model.Order) error {
	existing, ok := m.store[order.ID]
	if !ok {
		return model.ErrOrderNotFound
	}
	if existing.Version != order.Version-1 {
		return model.ErrOptimisticLock
	}
	val := *order
	m.store[order.ID] = &val
	return nil
}

type mockEventDispatcher struct {
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
