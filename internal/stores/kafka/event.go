package kafka

import "time"

const TopicOrderPaid = `store-admin.order-paid`

// OrderPaidEvent is published once per order item after the payment webhook
// finalizes an order. Downstream consumers (inventory, email) key on OrderID.
type OrderPaidEvent struct {
	OrderID   string    `json:"order_id"`
	StoreID   string    `json:"store_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
