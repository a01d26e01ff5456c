// server/internal/api/handlers/supply_input_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/supply"
	"pr-tracker-api-server/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInvalidForm = "Failed to create Supply Input. Invalid form data."

type SupplyInputHandler struct {
	Service *supply.Service
	Source  RequestSource
	Logger  *zap.Logger
}

func (h *SupplyInputHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request cancelled", "details": err.Error()})
		return
	}
	h.Logger.Error("supply input operation failed", zap.String("operation", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op, "details": err.Error()})
}

func (h *SupplyInputHandler) GetAllSupplyInputs(c *gin.Context) {
	inputs, err := h.Service.FetchAll(c.Request.Context())
	if err != nil {
		h.fail(c, "fetch supply inputs", err)
		return
	}
	c.JSON(http.StatusOK, inputs)
}

func (h *SupplyInputHandler) GetSupplyInput(c *gin.Context) {
	in, ok, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "fetch supply input", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supply Input not found."})
		return
	}
	c.JSON(http.StatusOK, in)
}

// GetSupplyInputContext joins the supply input with the mirrored request it
// commits against.
func (h *SupplyInputHandler) GetSupplyInputContext(c *gin.Context) {
	in, ok, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "fetch supply input", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supply Input not found."})
		return
	}
	withContext, matched := supply.WithContext(in, h.Source.Requests())
	c.JSON(http.StatusOK, gin.H{"matched": matched, "context": withContext})
}

func (h *SupplyInputHandler) CreateSupplyInput(c *gin.Context) {
	var in models.SupplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.create(c, in)
}

// CreateSupplyInputFromForm accepts the raw form shape with string numerics.
func (h *SupplyInputHandler) CreateSupplyInputFromForm(c *gin.Context) {
	var form models.SupplyInputFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, errs := supply.ParseForm(form)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, models.SupplyInputResponse{
			Success: false,
			Message: msgInvalidForm,
			Errors:  errs,
		})
		return
	}
	h.create(c, in)
}

func (h *SupplyInputHandler) create(c *gin.Context, in models.SupplyInput) {
	if in.SupplyOrderBookTime == 0 {
		in.SupplyOrderBookTime = nowMillis()
	}
	resp, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create supply input", err)
		return
	}
	if !resp.Success {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SupplyInputHandler) UpdateSupplyInput(c *gin.Context) {
	var patch models.SupplyInputPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update supply input", err)
		return
	}
	if !resp.Success {
		c.JSON(http.StatusNotFound, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SupplyInputHandler) BulkSupplyInputs(c *gin.Context) {
	var req models.BulkSupplyInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.BulkOperation(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "process bulk operation", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSupplyInputViews classifies supply inputs that match a mirrored request.
func (h *SupplyInputHandler) GetSupplyInputViews(c *gin.Context) {
	inputs, err := h.Service.FetchAll(c.Request.Context())
	if err != nil {
		h.fail(c, "fetch supply inputs", err)
		return
	}
	c.JSON(http.StatusOK, views.Partition(supply.Reconcile(inputs, h.Source.Requests())))
}
