package handlers

import (
	"net/http"

	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vslaHandler handles HTTP requests for savings-group cycles.
type vslaHandler struct {
	vslaService portssvc.VslaSvcFacade
}

// newVslaHandler creates a new vslaHandler.
func newVslaHandler(vslaService portssvc.VslaSvcFacade) *vslaHandler {
	return &vslaHandler{vslaService: vslaService}
}

func (h *vslaHandler) getShareoutPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cycleID := c.Param("cycleID")

	pool, err := h.vslaService.ShareoutPool(c.Request.Context(), cycleID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute share-out pool")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: pool})
}

// registerVslaRoutes registers savings-group cycle routes
func registerVslaRoutes(group *gin.RouterGroup, vslaSvc portssvc.VslaSvcFacade) {
	vslaHandler := newVslaHandler(vslaSvc)

	cycles := group.Group("/vsla-cycles")
	cycles.GET("/:cycleID/shareout-pool", vslaHandler.getShareoutPool)
}
