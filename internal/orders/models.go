package orders

import "time"

// Order is created unpaid at checkout and finalized exactly once by the
// payment webhook, which fills in Address and Phone and flips IsPaid.
type Order struct {
	ID         string      `json:"id"`
	StoreID    string      `json:"store_id"`
	IsPaid     bool        `json:"is_paid"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	OrderItems []OrderItem `json:"order_items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderItem is immutable after creation.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
}
