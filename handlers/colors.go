package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"store-admin-service/internal/colors"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateColor(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	var newColor colors.NewColor
	if !bindJSON(c, traceId, &newColor) {
		return
	}
	if !h.validateRequest(c, traceId, newColor) {
		return
	}

	color, err := h.colors.InsertColor(c.Request.Context(), storeID, newColor)
	if err != nil {
		slog.Error("error in inserting the color", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Color creation failed"})
		return
	}

	c.JSON(http.StatusOK, color)
}

// GetColor is a public storefront read.
func (h *Handler) GetColor(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID := c.Param("storeId")
	colorID := c.Param("colorId")

	color, err := h.colors.GetColorByID(c.Request.Context(), storeID, colorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, nil)
			return
		}
		slog.Error("error in retrieving color", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch color"})
		return
	}

	c.JSON(http.StatusOK, color)
}

func (h *Handler) ListColors(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	list, err := h.colors.ListColors(c.Request.Context(), storeID)
	if err != nil {
		slog.Error("error in fetching colors", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch colors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"colors": list})
}

func (h *Handler) UpdateColor(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	colorID := c.Param("colorId")

	var newColor colors.NewColor
	if !bindJSON(c, traceId, &newColor) {
		return
	}
	if !h.validateRequest(c, traceId, newColor) {
		return
	}

	color, err := h.colors.UpdateColor(c.Request.Context(), storeID, colorID, newColor)
	if err != nil {
		slog.Error("error in updating the color", slog.String(logkey.TraceID, traceId), slog.String("ColorID", colorID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Color update failed"})
		return
	}

	c.JSON(http.StatusOK, color)
}

func (h *Handler) DeleteColor(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	colorID := c.Param("colorId")

	color, err := h.colors.DeleteColor(c.Request.Context(), storeID, colorID)
	if err != nil {
		slog.Error("error in deleting the color", slog.String(logkey.TraceID, traceId), slog.String("ColorID", colorID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Make sure you removed all products using this color first"})
		return
	}

	c.JSON(http.StatusOK, color)
}
