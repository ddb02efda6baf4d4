package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"store-admin-service/internal/categories"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	var newCategory categories.NewCategory
	if !bindJSON(c, traceId, &newCategory) {
		return
	}
	if !h.validateRequest(c, traceId, newCategory) {
		return
	}

	category, err := h.categories.InsertCategory(c.Request.Context(), storeID, newCategory)
	if err != nil {
		slog.Error("error in inserting the category", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Category creation failed"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetCategory is a public storefront read, returned with its billboard.
func (h *Handler) GetCategory(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID := c.Param("storeId")
	categoryID := c.Param("categoryId")

	category, err := h.categories.GetCategoryByID(c.Request.Context(), storeID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, nil)
			return
		}
		slog.Error("error in retrieving category", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) ListCategories(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	list, err := h.categories.ListCategories(c.Request.Context(), storeID)
	if err != nil {
		slog.Error("error in fetching categories", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": list})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	categoryID := c.Param("categoryId")

	var newCategory categories.NewCategory
	if !bindJSON(c, traceId, &newCategory) {
		return
	}
	if !h.validateRequest(c, traceId, newCategory) {
		return
	}

	category, err := h.categories.UpdateCategory(c.Request.Context(), storeID, categoryID, newCategory)
	if err != nil {
		slog.Error("error in updating the category", slog.String(logkey.TraceID, traceId), slog.String("CategoryID", categoryID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Category update failed"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	categoryID := c.Param("categoryId")

	category, err := h.categories.DeleteCategory(c.Request.Context(), storeID, categoryID)
	if err != nil {
		slog.Error("error in deleting the category", slog.String(logkey.TraceID, traceId), slog.String("CategoryID", categoryID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Make sure you removed all products using this category first"})
		return
	}

	c.JSON(http.StatusOK, category)
}
