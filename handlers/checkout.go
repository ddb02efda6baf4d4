package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
)

type checkoutRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
	Phone      string   `json:"phone"`
}

// Checkout is hit by the storefront without authentication. It creates an
// unpaid order for the requested products and hands back a Stripe checkout
// session URL; the webhook finalizes the order once the session completes.
func (h *Handler) Checkout(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	storeID := c.Param("storeId")

	var req checkoutRequest
	if !bindJSON(c, traceId, &req) {
		return
	}
	if !h.validateRequest(c, traceId, req) {
		return
	}

	detailedItems, err := h.products.GetProductsByIDs(c.Request.Context(), storeID, req.ProductIDs)
	if err != nil {
		slog.Error("failed to fetch product details", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product details"})
		return
	}
	if len(detailedItems) != len(req.ProductIDs) {
		slog.Error("checkout requested unavailable products", slog.String(logkey.TraceID, traceId), slog.String("StoreID", storeID))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "One or more products are unavailable"})
		return
	}

	// Stripe configuration
	sKey := os.Getenv("STRIPE_TEST_KEY")
	if sKey == "" {
		slog.Error("Stripe secret key not found", slog.String(logkey.TraceID, traceId))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Stripe secret key not found"})
		return
	}
	stripe.Key = sKey

	// Prepare Stripe line items
	orderId := uuid.NewString()
	lineItems := []*stripe.CheckoutSessionLineItemParams{}
	for _, item := range detailedItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(item.PriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	// Create Stripe checkout session
	params := &stripe.CheckoutSessionParams{
		SubmitType:               stripe.String("pay"),
		BillingAddressCollection: stripe.String("required"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US"}),
		},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(os.Getenv("CHECKOUT_SUCCESS_URL")),
		CancelURL:  stripe.String(os.Getenv("CHECKOUT_CANCEL_URL")),
	}
	params.AddMetadata("order_id", orderId)

	sessionStripe, err := session.New(params)
	if err != nil {
		slog.Error("failed to create checkout session", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	// Record the unpaid order before handing the URL out. The webhook marks
	// it paid using the order_id carried in the session metadata.
	_, err = h.orders.CreateOrder(c.Request.Context(), orderId, storeID, req.ProductIDs, req.Phone)
	if err != nil {
		slog.Error("failed to create order", slog.String(logkey.TraceID, traceId), slog.String("OrderID", orderId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_session_url": sessionStripe.URL})
}
