package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/doctor"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves doctor account endpoints.
type DoctorHandler struct {
	Service doctor.DoctorService
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(service doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: service}
}

func (h *DoctorHandler) RegisterDoctorHandler(c *gin.Context) {
	var req models.DoctorRegistration
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

func (h *DoctorHandler) AuthenticateDoctorHandler(c *gin.Context) {
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

// ListDoctorsHandler returns the doctor directory for the booking flow.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctors", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (h *DoctorHandler) GetDoctorByIDHandler(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": doc})
}

// LogoutDoctorHandler revokes the presented session token.
func (h *DoctorHandler) LogoutDoctorHandler(c *gin.Context) {
	tokenValue, exists := c.Get("authToken")
	token, _ := tokenValue.(string)
	if !exists || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	if err := h.Service.RevokeToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
