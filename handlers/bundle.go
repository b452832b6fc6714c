package handlers

import (
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects every route handler plus the repositories the auth
// middleware needs. Assembled once in main and handed to routes.RegisterRoutes.
type HandlerBundle struct {
	DoctorRepo  doctorRepo.DoctorRepository
	PatientRepo patientRepo.PatientRepository

	// Doctor account endpoints.
	RegisterDoctorHandler     gin.HandlerFunc
	AuthenticateDoctorHandler gin.HandlerFunc
	ListDoctorsHandler        gin.HandlerFunc
	GetDoctorByIDHandler      gin.HandlerFunc
	LogoutDoctorHandler       gin.HandlerFunc

	// Patient account endpoints.
	RegisterPatientHandler     gin.HandlerFunc
	AuthenticatePatientHandler gin.HandlerFunc
	LogoutPatientHandler       gin.HandlerFunc

	// Availability endpoints.
	GetAvailabilityHandler gin.HandlerFunc

	// Slot manager endpoints.
	GetScheduleHandler        gin.HandlerFunc
	SaveScheduleHandler       gin.HandlerFunc
	OpenSessionHandler        gin.HandlerFunc
	ApplySessionActionHandler gin.HandlerFunc
	SaveSessionHandler        gin.HandlerFunc
	DiscardSessionHandler     gin.HandlerFunc

	// Appointment endpoints.
	BookAppointmentHandler         gin.HandlerFunc
	ListPatientAppointmentsHandler gin.HandlerFunc
	ListDoctorAppointmentsHandler  gin.HandlerFunc
	RescheduleAppointmentHandler   gin.HandlerFunc
	CancelAppointmentHandler       gin.HandlerFunc
	UpdateAppointmentStatusHandler gin.HandlerFunc
}
