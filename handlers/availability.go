package handlers

import (
	"net/http"
	"time"

	"medibook/services/availability"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves resolved slot lists.
type AvailabilityHandler struct {
	Resolver *availability.Resolver
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(resolver *availability.Resolver) *AvailabilityHandler {
	return &AvailabilityHandler{Resolver: resolver}
}

// GetAvailabilityHandler returns every template slot for a (doctor, date)
// pair tagged with its bookable state.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	if doctorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing doctor ID in path"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}
	if _, err := time.Parse(availability.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	result, err := h.Resolver.Resolve(c.Request.Context(), doctorID, date, time.Now())
	if err != nil {
		utils.GetLogger().Error("failed to resolve availability",
			zap.String("doctorID", doctorID), zap.String("date", date), zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
