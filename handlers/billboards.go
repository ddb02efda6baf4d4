package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"store-admin-service/internal/billboards"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBillboard(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	var newBillboard billboards.NewBillboard
	if !bindJSON(c, traceId, &newBillboard) {
		return
	}
	if !h.validateRequest(c, traceId, newBillboard) {
		return
	}

	billboard, err := h.billboards.InsertBillboard(c.Request.Context(), storeID, newBillboard)
	if err != nil {
		slog.Error("error in inserting the billboard", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Billboard creation failed"})
		return
	}

	c.JSON(http.StatusOK, billboard)
}

// GetBillboard is a public storefront read. A missing billboard is not an
// error to the storefront; it renders as an absent section.
func (h *Handler) GetBillboard(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID := c.Param("storeId")
	billboardID := c.Param("billboardId")

	billboard, err := h.billboards.GetBillboardByID(c.Request.Context(), storeID, billboardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, nil)
			return
		}
		slog.Error("error in retrieving billboard", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch billboard"})
		return
	}

	c.JSON(http.StatusOK, billboard)
}

func (h *Handler) ListBillboards(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	list, err := h.billboards.ListBillboards(c.Request.Context(), storeID)
	if err != nil {
		slog.Error("error in fetching billboards", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch billboards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"billboards": list})
}

func (h *Handler) UpdateBillboard(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	billboardID := c.Param("billboardId")

	var newBillboard billboards.NewBillboard
	if !bindJSON(c, traceId, &newBillboard) {
		return
	}
	if !h.validateRequest(c, traceId, newBillboard) {
		return
	}

	billboard, err := h.billboards.UpdateBillboard(c.Request.Context(), storeID, billboardID, newBillboard)
	if err != nil {
		slog.Error("error in updating the billboard", slog.String(logkey.TraceID, traceId), slog.String("BillboardID", billboardID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Billboard update failed"})
		return
	}

	c.JSON(http.StatusOK, billboard)
}

func (h *Handler) DeleteBillboard(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	storeID, ok := h.ownedStore(c, traceId)
	if !ok {
		return
	}

	billboardID := c.Param("billboardId")

	billboard, err := h.billboards.DeleteBillboard(c.Request.Context(), storeID, billboardID)
	if err != nil {
		// A billboard still referenced by a category fails on the foreign
		// key and surfaces as a generic failure, never a partial delete.
		slog.Error("error in deleting the billboard", slog.String(logkey.TraceID, traceId), slog.String("BillboardID", billboardID), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Make sure you removed all categories using this billboard first"})
		return
	}

	c.JSON(http.StatusOK, billboard)
}
