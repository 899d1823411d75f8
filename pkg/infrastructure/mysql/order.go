package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/model"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ model.OrderRepository = &OrderRepository{}

type orderRow struct {
	ID         uuid.UUID `db:"id"`
	CustomerID uuid.UUID `db:"customer_id"`
	Status     int       `db:"status"`
	TotalCents int64     `db:"total_cents"`
	Version    int       `db:"version"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type orderItemRow struct {
	ID             uuid.UUID `db:"id"`
	OrderID        uuid.UUID `db:"order_id"`
	ProductCode    string    `db:"product_code"`
	ProductName    string    `db:"product_name"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	Quantity       int       `db:"quantity"`
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *OrderRepository) Create(order *model.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO orders (id, customer_id, status, total_cents, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.CustomerID, int(order.Status), order.TotalCents, order.Version,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	for _, item := range order.Items {
		_, err = tx.Exec(`
			INSERT INTO order_items (id, order_id, product_code, product_name, unit_price_cents, quantity)
			VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, order.ID, item.ProductCode, item.ProductName, item.UnitPriceCents, item.Quantity,
		)
		if err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order")
}

func (r *OrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, customer_id, status, total_cents, version, created_at, updated_at FROM orders WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query order")
	}

	var itemRows []orderItemRow
	err = r.db.Select(&itemRows, `SELECT id, order_id, product_code, product_name, unit_price_cents, quantity FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "query order items")
	}

	order := &model.Order{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Status:     model.OrderStatus(row.Status),
		TotalCents: row.TotalCents,
		Version:    row.Version,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	for _, item := range itemRows {
		order.Items = append(order.Items, model.Item{
			ID:             item.ID,
			ProductCode:    item.ProductCode,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	return order, nil
}

// Update writes order state back guarded by the version column; a stale
// version means another transaction got there first.
func (r *OrderRepository) Update(order *model.Order) error {
	result, err := r.db.Exec(`
		UPDATE orders
		SET status = ?, total_cents = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		int(order.Status), order.TotalCents, order.Version, order.UpdatedAt,
		order.ID, order.Version-1,
	)
	if err != nil {
		return errors.Wrap(err, "update order")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update order rows affected")
	}
	if affected == 0 {
		var exists bool
		if err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = ?)`, order.ID); err != nil {
			return errors.Wrap(err, "query order by id")
		}
		if !exists {
			return model.ErrOrderNotFound
		}
		return model.ErrOptimisticLock
	}
	return nil
}
