package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"store-admin-service/internal/tenants"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateStore(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := requestClaims(c, traceId)
	if !ok {
		return
	}

	var newStore tenants.NewStore
	if !bindJSON(c, traceId, &newStore) {
		return
	}
	if !h.validateRequest(c, traceId, newStore) {
		return
	}

	store, err := h.stores.InsertStore(c.Request.Context(), claims.Subject, newStore)
	if err != nil {
		slog.Error("error in inserting the store", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store creation failed"})
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *Handler) ListStores(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := requestClaims(c, traceId)
	if !ok {
		return
	}

	stores, err := h.stores.ListStoresByUser(c.Request.Context(), claims.Subject)
	if err != nil {
		slog.Error("error in fetching stores", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

func (h *Handler) UpdateStore(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := requestClaims(c, traceId)
	if !ok {
		return
	}

	storeID := c.Param("storeId")
	if storeID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Store Id is required"})
		return
	}

	var newStore tenants.NewStore
	if !bindJSON(c, traceId, &newStore) {
		return
	}
	if !h.validateRequest(c, traceId, newStore) {
		return
	}

	store, err := h.stores.UpdateStore(c.Request.Context(), storeID, claims.Subject, newStore.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Error("store not owned by caller", slog.String(logkey.TraceID, traceId), slog.String("StoreID", storeID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		slog.Error("error in updating the store", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store update failed"})
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *Handler) DeleteStore(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := requestClaims(c, traceId)
	if !ok {
		return
	}

	storeID := c.Param("storeId")
	if storeID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Store Id is required"})
		return
	}

	store, err := h.stores.DeleteStore(c.Request.Context(), storeID, claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Error("store not owned by caller", slog.String(logkey.TraceID, traceId), slog.String("StoreID", storeID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Likely a foreign key conflict: the store still has catalog rows.
		slog.Error("error in deleting the store", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store deletion failed"})
		return
	}

	c.JSON(http.StatusOK, store)
}
