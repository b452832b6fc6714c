package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDoctorRoutes registers doctor account endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.POST("/register", hb.RegisterDoctorHandler)
		api.POST("/login", hb.AuthenticateDoctorHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		api.DELETE("/logout", hb.LogoutDoctorHandler)
	}
}

// RegisterPatientRoutes registers patient account endpoints. The doctor
// directory lives here because patients browse it when booking.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.POST("/register", hb.RegisterPatientHandler)
		api.POST("/login", hb.AuthenticatePatientHandler)

		api.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		api.DELETE("/logout", hb.LogoutPatientHandler)
		api.GET("/doctors", hb.ListDoctorsHandler)
		api.GET("/doctors/:id", hb.GetDoctorByIDHandler)
	}
}

// RegisterAvailabilityRoutes registers the resolved-slot endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		api.GET("/:doctorID", hb.GetAvailabilityHandler)
	}
}

// RegisterScheduleRoutes registers the doctor-facing slot manager.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		api.GET("", hb.GetScheduleHandler)
		api.PUT("", hb.SaveScheduleHandler)

		api.POST("/session", hb.OpenSessionHandler)
		api.POST("/session/:sessionID/action", hb.ApplySessionActionHandler)
		api.POST("/session/:sessionID/save", hb.SaveSessionHandler)
		api.DELETE("/session/:sessionID", hb.DiscardSessionHandler)
	}
}

// RegisterAppointmentRoutes registers booking and appointment management.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	patientGroup := r.Group("/api/appointments")
	{
		patientGroup.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		patientGroup.POST("", hb.BookAppointmentHandler)
		patientGroup.GET("", hb.ListPatientAppointmentsHandler)
		patientGroup.PUT("/:appointmentID/reschedule", hb.RescheduleAppointmentHandler)
		patientGroup.DELETE("/:appointmentID", hb.CancelAppointmentHandler)
	}

	// Status transitions are doctor-driven, so the route carries its own auth.
	r.PATCH("/api/appointments/:appointmentID/status",
		middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo), hb.UpdateAppointmentStatusHandler)

	doctorGroup := r.Group("/api/doctor/appointments")
	{
		doctorGroup.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		doctorGroup.GET("", hb.ListDoctorAppointmentsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Medibook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDoctorRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r)
}
