package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/availability"
	schedulesvc "medibook/services/schedule"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves the doctor-facing slot manager.
type ScheduleHandler struct {
	Service schedulesvc.ManagerService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(service schedulesvc.ManagerService) *ScheduleHandler {
	return &ScheduleHandler{Service: service}
}

// GetScheduleHandler returns the doctor's saved leave schedule.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	sched, err := h.Service.GetSchedule(c.Request.Context(), doctorID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// SaveScheduleHandler persists a full schedule overwrite.
func (h *ScheduleHandler) SaveScheduleHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	var sched models.DoctorSchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule payload", "message": err.Error()})
		return
	}

	if err := h.Service.SaveSchedule(c.Request.Context(), doctorID, &sched); err != nil {
		utils.GetLogger().Error("failed to save schedule", zap.String("doctorID", doctorID), zap.Error(err))
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule saved"})
}

// OpenSessionHandler starts a slot-manager edit session seeded from the
// saved schedule.
func (h *ScheduleHandler) OpenSessionHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	sessionID, state, err := h.Service.OpenSession(c.Request.Context(), doctorID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "state": state})
}

// ApplySessionActionHandler applies one edit (toggle full day, toggle slot,
// bulk block, clear, undo) to a parked edit session.
func (h *ScheduleHandler) ApplySessionActionHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	var action schedulesvc.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action payload", "message": err.Error()})
		return
	}

	state, err := h.Service.ApplyAction(c.Request.Context(), doctorID, sessionID, action)
	if err != nil {
		if availability.CodeOf(err) != "" {
			respondEngineError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// SaveSessionHandler persists the session's working schedule. On failure the
// session stays intact so the doctor can retry without re-entering edits.
func (h *ScheduleHandler) SaveSessionHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	sched, err := h.Service.SaveSession(c.Request.Context(), doctorID, sessionID)
	if err != nil {
		utils.GetLogger().Error("failed to save schedule session",
			zap.String("doctorID", doctorID), zap.Error(err))
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule saved", "schedule": sched})
}

// DiscardSessionHandler drops an edit session without saving.
func (h *ScheduleHandler) DiscardSessionHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	if err := h.Service.DiscardSession(c.Request.Context(), doctorID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discard session", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session discarded"})
}
