package middleware

import (
	"net/http"
	"strings"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Insufficient authorization",
		"code":  0,
	})
}

// JWTAuthDoctorMiddleware authenticates a doctor bearer token and puts the
// doctor ID and raw token on the request context.
func JWTAuthDoctorMiddleware(repo doctorRepo.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || id == "" || role != "doctor" {
			abortUnauthorized(c)
			return
		}
		if utils.IsTokenRevoked(c.Request.Context(), tokenString) {
			abortUnauthorized(c)
			return
		}
		if _, err := repo.GetByID(c.Request.Context(), id); err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("doctorID", id)
		c.Set("authToken", tokenString)
		c.Next()
	}
}

// JWTAuthPatientMiddleware authenticates a patient bearer token and puts the
// patient ID and raw token on the request context.
func JWTAuthPatientMiddleware(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || id == "" || role != "patient" {
			abortUnauthorized(c)
			return
		}
		if utils.IsTokenRevoked(c.Request.Context(), tokenString) {
			abortUnauthorized(c)
			return
		}
		if _, err := repo.GetByID(c.Request.Context(), id); err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("patientID", id)
		c.Set("authToken", tokenString)
		c.Next()
	}
}
