// server/internal/api/handlers/purchase_request_handler.go
package handlers

import (
	"net/http"

	"pr-tracker-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// RequestSource is the read side of the purchase request mirror.
type RequestSource interface {
	Requests() []models.PurchaseRequest
	Get(id string) (models.PurchaseRequest, bool)
	Loading() bool
	Revision() uint64
	Epoch() string
}

type PurchaseRequestHandler struct {
	Source RequestSource
}

// GetAllPurchaseRequests returns the mirrored collection as last delivered.
func (h *PurchaseRequestHandler) GetAllPurchaseRequests(c *gin.Context) {
	requests := h.Source.Requests()
	if requests == nil {
		requests = []models.PurchaseRequest{}
	}
	c.JSON(http.StatusOK, requests)
}

// GetPurchaseRequest returns one request with its history in time order.
func (h *PurchaseRequestHandler) GetPurchaseRequest(c *gin.Context) {
	id := c.Param("id")
	pr, ok := h.Source.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase request not found"})
		return
	}
	pr.History = models.SortedHistory(pr.History)
	c.JSON(http.StatusOK, pr)
}

func (h *PurchaseRequestHandler) GetSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loading":  h.Source.Loading(),
		"revision": h.Source.Revision(),
		"count":    len(h.Source.Requests()),
	})
}
