package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"store-admin-service/internal/products"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	var newProduct products.NewProduct
	if !bindJSON(c, traceId, &newProduct) {
		return
	}
	if !h.validateRequest(c, traceId, newProduct) {
		return
	}

	product, err := h.products.InsertProduct(c.Request.Context(), storeID, newProduct)
	if err != nil {
		slog.Error("error in inserting the product", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product creation failed"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProduct is a public storefront read, images included.
func (h *Handler) GetProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID := c.Param("storeId")
	productID := c.Param("productId")

	product, err := h.products.GetProductByID(c.Request.Context(), storeID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, nil)
			return
		}
		slog.Error("error in retrieving product", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts serves the public catalog. Archived products never appear here;
// the query params narrow the result set for storefront category pages.
func (h *Handler) ListProducts(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID := c.Param("storeId")

	filter := products.ListFilter{
		CategoryID:   c.Query("categoryId"),
		SizeID:       c.Query("sizeId"),
		ColorID:      c.Query("colorId"),
		FeaturedOnly: c.Query("isFeatured") == "true",
	}

	list, err := h.products.ListProducts(c.Request.Context(), storeID, filter)
	if err != nil {
		slog.Error("error in fetching products", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": list})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	productID := c.Param("productId")

	var newProduct products.NewProduct
	if !bindJSON(c, traceId, &newProduct) {
		return
	}
	if !h.validateRequest(c, traceId, newProduct) {
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), storeID, productID, newProduct)
	if err != nil {
		slog.Error("error in updating the product", slog.String(logkey.TraceID, traceId), slog.String("ProductID", productID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product update failed"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	productID := c.Param("productId")

	product, err := h.products.DeleteProduct(c.Request.Context(), storeID, productID)
	if err != nil {
		slog.Error("error in deleting the product", slog.String(logkey.TraceID, traceId), slog.String("ProductID", productID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product deletion failed"})
		return
	}

	c.JSON(http.StatusOK, product)
}
