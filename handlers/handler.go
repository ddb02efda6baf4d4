// Package handlers exposes the admin dashboard REST API. Every mutation is
// scoped to a store owned by the authenticated caller; catalog reads are
// public so the storefront can consume them without a token.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"

	"store-admin-service/internal/auth"
	"store-admin-service/internal/billboards"
	"store-admin-service/internal/categories"
	"store-admin-service/internal/colors"
	"store-admin-service/internal/orders"
	"store-admin-service/internal/products"
	"store-admin-service/internal/sizes"
	"store-admin-service/internal/tenants"
	"store-admin-service/middleware"
	"store-admin-service/pkg/logkey"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Per-domain interfaces let handler tests swap the database-backed Conf
// structs for mocks.

type Stores interface {
	InsertStore(ctx context.Context, userID string, ns tenants.NewStore) (tenants.Store, error)
	ListStoresByUser(ctx context.Context, userID string) ([]tenants.Store, error)
	StoreOwnedBy(ctx context.Context, storeID, userID string) (bool, error)
	UpdateStore(ctx context.Context, storeID, userID, name string) (tenants.Store, error)
	DeleteStore(ctx context.Context, storeID, userID string) (tenants.Store, error)
}

type Billboards interface {
	InsertBillboard(ctx context.Context, storeID string, nb billboards.NewBillboard) (billboards.Billboard, error)
	GetBillboardByID(ctx context.Context, storeID, billboardID string) (billboards.Billboard, error)
	ListBillboards(ctx context.Context, storeID string) ([]billboards.Billboard, error)
	UpdateBillboard(ctx context.Context, storeID, billboardID string, nb billboards.NewBillboard) (billboards.Billboard, error)
	DeleteBillboard(ctx context.Context, storeID, billboardID string) (billboards.Billboard, error)
}

type Categories interface {
	InsertCategory(ctx context.Context, storeID string, nc categories.NewCategory) (categories.Category, error)
	GetCategoryByID(ctx context.Context, storeID, categoryID string) (categories.Category, error)
	ListCategories(ctx context.Context, storeID string) ([]categories.Category, error)
	UpdateCategory(ctx context.Context, storeID, categoryID string, nc categories.NewCategory) (categories.Category, error)
	DeleteCategory(ctx context.Context, storeID, categoryID string) (categories.Category, error)
}

type Sizes interface {
	InsertSize(ctx context.Context, storeID string, ns sizes.NewSize) (sizes.Size, error)
	GetSizeByID(ctx context.Context, storeID, sizeID string) (sizes.Size, error)
	ListSizes(ctx context.Context, storeID string) ([]sizes.Size, error)
	UpdateSize(ctx context.Context, storeID, sizeID string, ns sizes.NewSize) (sizes.Size, error)
	DeleteSize(ctx context.Context, storeID, sizeID string) (sizes.Size, error)
}

type Colors interface {
	InsertColor(ctx context.Context, storeID string, nc colors.NewColor) (colors.Color, error)
	GetColorByID(ctx context.Context, storeID, colorID string) (colors.Color, error)
	ListColors(ctx context.Context, storeID string) ([]colors.Color, error)
	UpdateColor(ctx context.Context, storeID, colorID string, nc colors.NewColor) (colors.Color, error)
	DeleteColor(ctx context.Context, storeID, colorID string) (colors.Color, error)
}

type Products interface {
	InsertProduct(ctx context.Context, storeID string, np products.NewProduct) (products.Product, error)
	GetProductByID(ctx context.Context, storeID, productID string) (products.Product, error)
	ListProducts(ctx context.Context, storeID string, filter products.ListFilter) ([]products.Product, error)
	GetProductsByIDs(ctx context.Context, storeID string, ids []string) ([]products.Product, error)
	UpdateProduct(ctx context.Context, storeID, productID string, np products.NewProduct) (products.Product, error)
	DeleteProduct(ctx context.Context, storeID, productID string) (products.Product, error)
}

type Orders interface {
	CreateOrder(ctx context.Context, orderID, storeID string, productIDs []string, phone string) (orders.Order, error)
	ListOrders(ctx context.Context, storeID string) ([]orders.Order, error)
	FinalizeOrder(ctx context.Context, eventID, eventType, orderID, address, phone string) (orders.Order, bool, error)
}

type EventProducer interface {
	ProduceMessage(topic string, key, value []byte) error
}

type Handler struct {
	stores     Stores
	billboards Billboards
	categories Categories
	sizes      Sizes
	colors     Colors
	products   Products
	orders     Orders
	producer   EventProducer
	validate   *validator.Validate
}

func NewHandler(stores Stores, billboards Billboards, categories Categories, sizes Sizes,
	colors Colors, products Products, orders Orders, producer EventProducer) *Handler {
	return &Handler{
		stores:     stores,
		billboards: billboards,
		categories: categories,
		sizes:      sizes,
		colors:     colors,
		products:   products,
		orders:     orders,
		producer:   producer,
		validate:   validator.New(),
	}
}

func API(endpointPrefix string, k *auth.Keys, h *Handler) *gin.Engine {
	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	m, err := middleware.NewMid(k)
	if err != nil {
		panic(err)
	}

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	// Public surface: webhook, storefront catalog reads, checkout.
	v1 := r.Group(endpointPrefix)
	{
		v1.POST("/webhook", h.StripeWebhook)

		v1.GET("/stores/:storeId/billboards/:billboardId", h.GetBillboard)
		v1.GET("/stores/:storeId/categories/:categoryId", h.GetCategory)
		v1.GET("/stores/:storeId/sizes/:sizeId", h.GetSize)
		v1.GET("/stores/:storeId/colors/:colorId", h.GetColor)
		v1.GET("/stores/:storeId/products", h.ListProducts)
		v1.GET("/stores/:storeId/products/:productId", h.GetProduct)
		v1.POST("/stores/:storeId/checkout", h.Checkout)
	}

	// Admin surface: everything here requires a verified token, and every
	// store-scoped mutation additionally requires ownership of the store.
	admin := r.Group(endpointPrefix)
	{
		admin.Use(m.Authentication())

		admin.POST("/stores", h.CreateStore)
		admin.GET("/stores", h.ListStores)
		admin.PATCH("/stores/:storeId", h.UpdateStore)
		admin.DELETE("/stores/:storeId", h.DeleteStore)

		admin.POST("/stores/:storeId/billboards", h.CreateBillboard)
		admin.GET("/stores/:storeId/billboards", h.ListBillboards)
		admin.PATCH("/stores/:storeId/billboards/:billboardId", h.UpdateBillboard)
		admin.DELETE("/stores/:storeId/billboards/:billboardId", h.DeleteBillboard)

		admin.POST("/stores/:storeId/categories", h.CreateCategory)
		admin.GET("/stores/:storeId/categories", h.ListCategories)
		admin.PATCH("/stores/:storeId/categories/:categoryId", h.UpdateCategory)
		admin.DELETE("/stores/:storeId/categories/:categoryId", h.DeleteCategory)

		admin.POST("/stores/:storeId/sizes", h.CreateSize)
		admin.GET("/stores/:storeId/sizes", h.ListSizes)
		admin.PATCH("/stores/:storeId/sizes/:sizeId", h.UpdateSize)
		admin.DELETE("/stores/:storeId/sizes/:sizeId", h.DeleteSize)

		admin.POST("/stores/:storeId/colors", h.CreateColor)
		admin.GET("/stores/:storeId/colors", h.ListColors)
		admin.PATCH("/stores/:storeId/colors/:colorId", h.UpdateColor)
		admin.DELETE("/stores/:storeId/colors/:colorId", h.DeleteColor)

		admin.POST("/stores/:storeId/products", h.CreateProduct)
		admin.PATCH("/stores/:storeId/products/:productId", h.UpdateProduct)
		admin.DELETE("/stores/:storeId/products/:productId", h.DeleteProduct)

		admin.GET("/stores/:storeId/orders", h.ListOrders)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestClaims pulls the verified claims placed in the context by the
// authentication middleware; absence means the route was misconfigured.
func requestClaims(c *gin.Context, traceId string) (auth.Claims, bool) {
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return auth.Claims{}, false
	}
	return claims, true
}

// ownedStore enforces the uniform mutation rule: the path's store must exist
// and belong to the caller. It returns the store id; on failure the response
// has already been written.
func (h *Handler) ownedStore(c *gin.Context, traceId string) (string, bool) {
	claims, ok := requestClaims(c, traceId)
	if !ok {
		return "", false
	}

	storeID := c.Param("storeId")
	if storeID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Store Id is required"})
		return "", false
	}

	owned, err := h.stores.StoreOwnedBy(c.Request.Context(), storeID, claims.Subject)
	if err != nil {
		slog.Error("error checking store ownership", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return "", false
	}
	if !owned {
		slog.Error("store not owned by caller", slog.String(logkey.TraceID, traceId), slog.String("StoreID", storeID))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return storeID, true
}

// validateRequest runs validator on a bound request struct and writes a 400
// naming the offending field, matching the error texture of the dashboard's
// forms.
func (h *Handler) validateRequest(c *gin.Context, traceId string, v any) bool {
	err := h.validate.Struct(v)
	if err == nil {
		return true
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, vErr := range vErrs {
			switch vErr.Tag() {
			case "required":
				slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Field() + " value missing"})
				return false
			case "min":
				slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Field() + " value is less than " + vErr.Param()})
				return false
			default:
				slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
				return false
			}
		}
	}

	slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
	return false
}

// bindJSON enforces the request body cap and decodes into v.
func bindJSON(c *gin.Context, traceId string, v any) bool {
	if c.Request.ContentLength > 5*1024 {
		slog.Error("request body limit breached", slog.String(logkey.TraceID, traceId), slog.Int64("Size Received", c.Request.ContentLength))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Request body too large."})
		return false
	}
	if err := c.ShouldBindJSON(v); err != nil {
		slog.Error("json validation error", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
		return false
	}
	return true
}
