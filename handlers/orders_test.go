package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"store-admin-service/internal/orders"

	"github.com/gin-gonic/gin"
)

func ordersRouter(h *Handler, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/v1")
	g.Use(mw...)
	g.GET("/stores/:storeId/orders", h.ListOrders)
	return r
}

func TestListOrders(t *testing.T) {
	o := &mockOrders{
		ListOrdersFunc: func(ctx context.Context, storeID string) ([]orders.Order, error) {
			return []orders.Order{
				{
					ID:      "order-1",
					StoreID: storeID,
					IsPaid:  true,
					Phone:   "555-0100",
					Address: "123 Main St, Springfield, IL, 62704, US",
					OrderItems: []orders.OrderItem{
						{ID: "item-1", OrderID: "order-1", ProductID: "prod-1"},
					},
				},
			}, nil
		},
	}
	h := testHandler(nil, nil, nil, nil, nil, nil, o, nil)
	r := ordersRouter(h, asUser("user-1"))

	req := httptest.NewRequest(http.MethodGet, "/v1/stores/store-1/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Orders []orders.Order `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Orders) != 1 || !resp.Orders[0].IsPaid {
		t.Errorf("unexpected orders response: %+v", resp.Orders)
	}
	if len(resp.Orders[0].OrderItems) != 1 {
		t.Errorf("expected order items inlined, got %+v", resp.Orders[0].OrderItems)
	}
}

func TestListOrdersNotOwner(t *testing.T) {
	listed := false
	stores := &mockStores{
		StoreOwnedByFunc: func(ctx context.Context, storeID, userID string) (bool, error) {
			return false, nil
		},
	}
	o := &mockOrders{
		ListOrdersFunc: func(ctx context.Context, storeID string) ([]orders.Order, error) {
			listed = true
			return nil, nil
		},
	}
	h := testHandler(stores, nil, nil, nil, nil, nil, o, nil)
	r := ordersRouter(h, asUser("intruder"))

	req := httptest.NewRequest(http.MethodGet, "/v1/stores/store-1/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if listed {
		t.Error("orders must not leak to callers who do not own the store")
	}
}
