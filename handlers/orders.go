package handlers

import (
	"log/slog"
	"net/http"

	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	list, err := h.orders.ListOrders(c.Request.Context(), storeID)
	if err != nil {
		slog.Error("error in fetching orders", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}
