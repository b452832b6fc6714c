package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/patient"

	"github.com/gin-gonic/gin"
)

// PatientHandler serves patient account endpoints.
type PatientHandler struct {
	Service patient.PatientService
}

// NewPatientHandler constructs a PatientHandler.
func NewPatientHandler(service patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: service}
}

func (h *PatientHandler) RegisterPatientHandler(c *gin.Context) {
	var req models.PatientRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PatientHandler) AuthenticatePatientHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutPatientHandler revokes the presented session token.
func (h *PatientHandler) LogoutPatientHandler(c *gin.Context) {
	tokenValue, exists := c.Get("authToken")
	token, _ := tokenValue.(string)
	if !exists || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	if err := h.Service.RevokeToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
