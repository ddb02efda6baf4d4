package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"store-admin-service/internal/orders"
	"store-admin-service/internal/stores/kafka"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

// StripeWebhook consumes checkout.session.completed events. Finalization is
// idempotent on the event id, so Stripe retries and duplicate deliveries are
// safe; a failed finalization returns 500 so Stripe redelivers.
func (h *Handler) StripeWebhook(c *gin.Context) {
	traceId := uuid.NewString()
	const MaxBodyBytes = int64(65536)

	// Limit the request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("failed to read webhook body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		slog.Error("webhook signature verification failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		err := json.Unmarshal(event.Data.Raw, &session)
		if err != nil {
			slog.Error("failed to unmarshal checkout session", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderId := session.Metadata["order_id"]
		slog.Info("checkout session completed", slog.String(logkey.TraceID, traceId), slog.String("SessionID", session.ID), slog.String("OrderID", orderId))

		var address, phone string
		if session.CustomerDetails != nil {
			address = formatShippingAddress(session.CustomerDetails.Address)
			phone = session.CustomerDetails.Phone
		}

		order, alreadyProcessed, err := h.orders.FinalizeOrder(c.Request.Context(), event.ID, string(event.Type), orderId, address, phone)
		if err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				slog.Error("webhook referenced unknown order", slog.String(logkey.TraceID, traceId), slog.String("OrderID", orderId))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Order not found"})
				return
			}
			slog.Error("failed to finalize order", slog.String(logkey.TraceID, traceId), slog.String("OrderID", orderId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Order finalization failed"})
			return
		}
		if alreadyProcessed {
			slog.Info("event already processed", slog.String(logkey.TraceID, traceId), slog.String("EventID", event.ID))
			c.Status(http.StatusOK)
			return
		}

		// Goroutine to fan paid order items out to downstream consumers
		go func() {
			for _, item := range order.OrderItems {
				jsonData, err := json.Marshal(kafka.OrderPaidEvent{
					OrderID:   order.ID,
					StoreID:   order.StoreID,
					ProductID: item.ProductID,
					CreatedAt: time.Now().UTC(),
				})
				if err != nil {
					slog.Error("failed to marshal OrderPaidEvent", slog.String(logkey.ERROR, err.Error()))
					return
				}

				key := []byte(order.ID)
				err = h.producer.ProduceMessage(kafka.TopicOrderPaid, key, jsonData)
				if err != nil {
					slog.Error("failed to produce message", slog.String(logkey.ERROR, err.Error()))
					return
				}
				slog.Info("message produced", slog.Any("data", string(jsonData)))
			}
		}()

		c.Status(http.StatusOK)

	default:
		slog.Info("unhandled event type", slog.String("event_type", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{
			"message": "Event type not handled",
			"event":   event.Type,
		})
	}
}

// formatShippingAddress joins the populated address components into the
// single line stored on the order.
func formatShippingAddress(addr *stripe.Address) string {
	if addr == nil {
		return ""
	}
	components := []string{addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country}
	parts := make([]string, 0, len(components))
	for _, component := range components {
		if component != "" {
			parts = append(parts, component)
		}
	}
	return strings.Join(parts, ", ")
}
