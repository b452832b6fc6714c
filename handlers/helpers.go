package handlers

import (
	"net/http"

	"medibook/services/availability"

	"github.com/gin-gonic/gin"
)

// respondEngineError maps availability engine error codes onto HTTP statuses.
// A store failure gets its own status so "could not load schedule" is never
// mistaken for "no slots available".
func respondEngineError(c *gin.Context, err error) {
	switch availability.CodeOf(err) {
	case availability.CodeDataUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load schedule data", "code": availability.CodeDataUnavailable})
	case availability.CodeSlotUnavailable:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": availability.CodeSlotUnavailable})
	case availability.CodePastDate:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": availability.CodePastDate})
	case availability.CodeInvalidSchedule:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": availability.CodeInvalidSchedule})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func doctorIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("doctorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid doctor ID in context"})
		return "", false
	}
	return id, true
}

func patientIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("patientID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid patient ID in context"})
		return "", false
	}
	return id, true
}
