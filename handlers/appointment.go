package handlers

import (
	"net/http"
	"time"

	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves booking, reschedule and status endpoints.
type AppointmentHandler struct {
	Service booking.BookingService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(service booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Service: service}
}

// BookAppointmentHandler books a slot for the authenticated patient.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}

	var req booking.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.BookSlot(c.Request.Context(), patientID, req, time.Now())
	if err != nil {
		utils.GetLogger().Warn("booking rejected",
			zap.String("patientID", patientID), zap.String("doctorID", req.DoctorID), zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// ListPatientAppointmentsHandler lists the authenticated patient's appointments.
func (h *AppointmentHandler) ListPatientAppointmentsHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}

	appts, err := h.Service.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListDoctorAppointmentsHandler lists the authenticated doctor's appointments.
func (h *AppointmentHandler) ListDoctorAppointmentsHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	appts, err := h.Service.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// RescheduleAppointmentHandler moves an appointment to a new slot.
func (h *AppointmentHandler) RescheduleAppointmentHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")

	var req struct {
		Date        string `json:"date" binding:"required"`
		Minute      int    `json:"minute"`
		ConfirmSame bool   `json:"confirmSame"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reschedule payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.Reschedule(c.Request.Context(), appointmentID, patientID, req.Date, req.Minute, req.ConfirmSame, time.Now())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels a future appointment.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")

	appt, err := h.Service.Cancel(c.Request.Context(), appointmentID, patientID, time.Now())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// UpdateAppointmentStatusHandler applies a doctor-driven status transition.
func (h *AppointmentHandler) UpdateAppointmentStatusHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")

	var req struct {
		Status models.AppointmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), appointmentID, doctorID, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
