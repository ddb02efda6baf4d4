package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned by FinalizeOrder when the webhook references
// an order id this service never issued.
var ErrOrderNotFound = errors.New("order not found")

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

// CreateOrder inserts an unpaid order and one item per product id, in one
// transaction. The order id is supplied by the caller because it is embedded
// in the checkout session metadata before the order row exists.
func (c *Conf) CreateOrder(ctx context.Context, orderID, storeID string, productIDs []string, phone string) (Order, error) {
	now := time.Now().UTC()
	order := Order{
		ID:        orderID,
		StoreID:   storeID,
		IsPaid:    false,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := c.withTx(ctx, func(tx *sql.Tx) error {
		queryOrder := `
			INSERT INTO orders (id, store_id, is_paid, phone, address, created_at, updated_at)
			VALUES ($1, $2, FALSE, $3, '', $4, $5)
		`
		if _, err := tx.ExecContext(ctx, queryOrder, order.ID, order.StoreID, order.Phone, order.CreatedAt, order.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		queryItem := `
			INSERT INTO order_items (id, order_id, product_id)
			VALUES ($1, $2, $3)
		`
		for _, productID := range productIDs {
			item := OrderItem{
				ID:        uuid.NewString(),
				OrderID:   order.ID,
				ProductID: productID,
			}
			if _, err := tx.ExecContext(ctx, queryItem, item.ID, item.OrderID, item.ProductID); err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
			order.OrderItems = append(order.OrderItems, item)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListOrders returns a store's orders with their items, newest first.
func (c *Conf) ListOrders(ctx context.Context, storeID string) ([]Order, error) {
	queryOrders := `
		SELECT id, store_id, is_paid, phone, address, created_at, updated_at
		FROM orders
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, queryOrders, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []Order
	var ids []string
	index := make(map[string]int)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.StoreID, &o.IsPaid, &o.Phone, &o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[o.ID] = len(result)
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	if len(ids) == 0 {
		return result, nil
	}

	queryItems := `
		SELECT id, order_id, product_id
		FROM order_items
		WHERE order_id = ANY($1)
	`
	itemRows, err := c.db.QueryContext(ctx, queryItems, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		i := index[item.OrderID]
		result[i].OrderItems = append(result[i].OrderItems, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return result, nil
}

// FinalizeOrder applies a verified payment confirmation: it records the
// provider event id, marks the order paid with the shipping details, and
// archives every product the order references. All of it runs in one
// transaction so a failure leaves no partial state behind.
//
// The returned bool is true when the event id was seen before; in that case
// nothing was written and the caller should simply acknowledge the delivery.
func (c *Conf) FinalizeOrder(ctx context.Context, eventID, eventType, orderID, address, phone string) (Order, bool, error) {
	var order Order
	alreadyProcessed := false

	err := c.withTx(ctx, func(tx *sql.Tx) error {
		queryEvent := `
			INSERT INTO processed_events (id, event_type, processed_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (id) DO NOTHING
		`
		res, err := tx.ExecContext(ctx, queryEvent, eventID, eventType)
		if err != nil {
			return fmt.Errorf("failed to record processed event: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if inserted == 0 {
			alreadyProcessed = true
			return nil
		}

		queryOrder := `
			UPDATE orders
			SET is_paid = TRUE, address = $1, phone = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING id, store_id, is_paid, phone, address, created_at, updated_at
		`
		err = tx.QueryRowContext(ctx, queryOrder, address, phone, orderID).
			Scan(&order.ID, &order.StoreID, &order.IsPaid, &order.Phone, &order.Address, &order.CreatedAt, &order.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		if err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}

		queryItems := `
			SELECT id, order_id, product_id
			FROM order_items
			WHERE order_id = $1
		`
		rows, err := tx.QueryContext(ctx, queryItems, order.ID)
		if err != nil {
			return fmt.Errorf("failed to query order items: %w", err)
		}
		defer rows.Close()

		var productIDs []string
		for rows.Next() {
			var item OrderItem
			if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID); err != nil {
				return fmt.Errorf("failed to scan order item: %w", err)
			}
			order.OrderItems = append(order.OrderItems, item)
			productIDs = append(productIDs, item.ProductID)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating order items: %w", err)
		}

		if len(productIDs) > 0 {
			queryArchive := `
				UPDATE products
				SET is_archived = TRUE, updated_at = NOW()
				WHERE id = ANY($1)
			`
			if _, err := tx.ExecContext(ctx, queryArchive, productIDs); err != nil {
				return fmt.Errorf("failed to archive products: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, false, err
	}
	return order, alreadyProcessed, nil
}

func (c *Conf) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if er := tx.Rollback(); er != nil && !errors.Is(er, sql.ErrTxDone) {
			return fmt.Errorf("failed to rollback withTx: %w", err)
		}
		return fmt.Errorf("failed to execute withTx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit withTx: %w", err)
	}
	return nil
}
