package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"store-admin-service/internal/sizes"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateSize(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	var newSize sizes.NewSize
	if !bindJSON(c, traceId, &newSize) {
		return
	}
	if !h.validateRequest(c, traceId, newSize) {
		return
	}

	size, err := h.sizes.InsertSize(c.Request.Context(), storeID, newSize)
	if err != nil {
		slog.Error("error in inserting the size", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Size creation failed"})
		return
	}

	c.JSON(http.StatusOK, size)
}

// GetSize is a public storefront read.
func (h *Handler) GetSize(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID := c.Param("storeId")
	sizeID := c.Param("sizeId")

	size, err := h.sizes.GetSizeByID(c.Request.Context(), storeID, sizeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, nil)
			return
		}
		slog.Error("error in retrieving size", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch size"})
		return
	}

	c.JSON(http.StatusOK, size)
}

func (h *Handler) ListSizes(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	list, err := h.sizes.ListSizes(c.Request.Context(), storeID)
	if err != nil {
		slog.Error("error in fetching sizes", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sizes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sizes": list})
}

func (h *Handler) UpdateSize(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	sizeID := c.Param("sizeId")

	var newSize sizes.NewSize
	if !bindJSON(c, traceId, &newSize) {
		return
	}
	if !h.validateRequest(c, traceId, newSize) {
		return
	}

	size, err := h.sizes.UpdateSize(c.Request.Context(), storeID, sizeID, newSize)
	if err != nil {
		slog.Error("error in updating the size", slog.String(logkey.TraceID, traceId), slog.String("SizeID", sizeID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Size update failed"})
		return
	}

	c.JSON(http.StatusOK, size)
}

func (h *Handler) DeleteSize(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	sizeID := c.Param("sizeId")

	size, err := h.sizes.DeleteSize(c.Request.Context(), storeID, sizeID)
	if err != nil {
		slog.Error("error in deleting the size", slog.String(logkey.TraceID, traceId), slog.String("SizeID", sizeID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Make sure you removed all products using this size first"})
		return
	}

	c.JSON(http.StatusOK, size)
}
