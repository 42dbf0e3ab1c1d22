package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/dto"
	"github.com/openretailbank/corebank/internal/middleware"
)

// bulkHandler handles batched administrative operations.
type bulkHandler struct {
	bulkService portssvc.BulkSvcFacade
}

func newBulkHandler(bulkService portssvc.BulkSvcFacade) *bulkHandler {
	return &bulkHandler{bulkService: bulkService}
}

// executeBulk godoc
// @Summary Execute a bulk administrative operation
// @Description Applies one action to a bounded batch of ids with per-item isolation
// @Tags bulk
// @Accept  json
// @Produce  json
// @Param   operation body dto.BulkRequest true "Bulk operation"
// @Success 200 {object} dto.BatchResult
// @Failure 400 {object} map[string]string "Oversized batch or unsupported action"
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /bulk [post]
func (h *bulkHandler) executeBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bulk operation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.bulkService.Execute(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerBulkRoutes registers the bulk operation route, admin only.
func registerBulkRoutes(group *gin.RouterGroup, bulkService portssvc.BulkSvcFacade) {
	h := newBulkHandler(bulkService)
	group.POST("/bulk", middleware.RequireAdmin(), h.executeBulk)
}
