package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/dto"
	"github.com/openretailbank/corebank/internal/middleware"
)

// wireHandler handles HTTP requests for the wire transfer compliance workflow.
type wireHandler struct {
	wireService portssvc.WireSvcFacade
}

func newWireHandler(wireService portssvc.WireSvcFacade) *wireHandler {
	return &wireHandler{wireService: wireService}
}

// createWire godoc
// @Summary Initiate an outbound wire transfer
// @Description Debits the sender by amount plus fee and opens a PENDING compliance review
// @Tags wires
// @Accept  json
// @Produce  json
// @Param   wire body dto.CreateWireRequest true "Wire details"
// @Success 201 {object} dto.WireResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Sender account not found"
// @Failure 422 {object} map[string]string "Insufficient funds or limit exceeded"
// @Router /wires [post]
func (h *wireHandler) createWire(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for wire creation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wire, err := h.wireService.CreateWireTransfer(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWireResponse(wire))
}

// getWire godoc
// @Summary Get a wire transfer
// @Description Retrieves a wire transfer and its compliance state by ID
// @Tags wires
// @Produce  json
// @Param   wireID path string true "Wire ID"
// @Success 200 {object} dto.WireResponse
// @Failure 404 {object} map[string]string "Wire not found"
// @Router /wires/{wireID} [get]
func (h *wireHandler) getWire(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	wireID := c.Param("wireID")

	wire, err := h.wireService.GetWireByID(c.Request.Context(), wireID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWireResponse(wire))
}

// approveWire godoc
// @Summary Approve a pending wire transfer
// @Description Finalizes a PENDING wire as APPROVED; the held funds leave the bank
// @Tags wires
// @Produce  json
// @Param   wireID path string true "Wire ID"
// @Success 200 {object} dto.WireResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Wire not found"
// @Failure 409 {object} map[string]string "Wire already finalized"
// @Router /wires/{wireID}/approve [post]
func (h *wireHandler) approveWire(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	wireID := c.Param("wireID")

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wire, err := h.wireService.ApproveWire(c.Request.Context(), wireID, approverID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWireResponse(wire))
}

// rejectWire godoc
// @Summary Reject a pending wire transfer
// @Description Finalizes a PENDING wire as REJECTED and refunds amount plus fee to the sender
// @Tags wires
// @Accept  json
// @Produce  json
// @Param   wireID path string true "Wire ID"
// @Param   rejection body dto.RejectWireRequest true "Rejection reason"
// @Success 200 {object} dto.WireResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Wire not found"
// @Failure 409 {object} map[string]string "Wire already finalized"
// @Router /wires/{wireID}/reject [post]
func (h *wireHandler) rejectWire(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	wireID := c.Param("wireID")

	var req dto.RejectWireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for wire rejection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wire, err := h.wireService.RejectWire(c.Request.Context(), wireID, approverID, req.Reason)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWireResponse(wire))
}

// registerWireRoutes registers wire transfer routes. Compliance decisions
// require the admin role.
func registerWireRoutes(group *gin.RouterGroup, wireService portssvc.WireSvcFacade) {
	h := newWireHandler(wireService)

	wires := group.Group("/wires")
	{
		wires.POST("", h.createWire)
		wires.GET("/:wireID", h.getWire)
		wires.POST("/:wireID/approve", middleware.RequireAdmin(), h.approveWire)
		wires.POST("/:wireID/reject", middleware.RequireAdmin(), h.rejectWire)
	}
}
