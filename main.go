// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepoPkg "medibook/database/repository/doctor"
	patientRepoPkg "medibook/database/repository/patient"
	scheduleRepoPkg "medibook/database/repository/schedule"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/doctor"
	"medibook/services/patient"
	schedulesvc "medibook/services/schedule"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patRepo := patientRepoPkg.NewMongoPatientRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	schedRepo := scheduleRepoPkg.NewCachedScheduleRepo(
		scheduleRepoPkg.NewMongoScheduleRepo(),
		utils.GetCacheClient(),
	)

	// availability engine shared by booking and the public endpoint.
	resolver := availability.NewResolver(schedRepo, apptRepo)

	// services.
	doctorService := &doctor.DefaultDoctorService{Repo: docRepo}
	patientService := &patient.DefaultPatientService{Repo: patRepo}
	scheduleService := &schedulesvc.DefaultManagerService{
		Repo:  schedRepo,
		Cache: utils.GetCacheClient(),
	}

	expiryScheduler := tasks.NewAsynqScheduler()
	defer expiryScheduler.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:     apptRepo,
		Resolver: resolver,
		Policy:   &booking.ReschedulePolicy{Resolver: resolver},
		Tasks:    expiryScheduler,
	}

	// handlers.
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	availabilityHandler := handlers.NewAvailabilityHandler(resolver)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		DoctorRepo:  docRepo,
		PatientRepo: patRepo,

		// Doctor endpoints.
		RegisterDoctorHandler:     doctorHandler.RegisterDoctorHandler,
		AuthenticateDoctorHandler: doctorHandler.AuthenticateDoctorHandler,
		ListDoctorsHandler:        doctorHandler.ListDoctorsHandler,
		GetDoctorByIDHandler:      doctorHandler.GetDoctorByIDHandler,
		LogoutDoctorHandler:       doctorHandler.LogoutDoctorHandler,

		// Patient endpoints.
		RegisterPatientHandler:     patientHandler.RegisterPatientHandler,
		AuthenticatePatientHandler: patientHandler.AuthenticatePatientHandler,
		LogoutPatientHandler:       patientHandler.LogoutPatientHandler,

		// Availability endpoints.
		GetAvailabilityHandler: availabilityHandler.GetAvailabilityHandler,

		// Slot manager endpoints.
		GetScheduleHandler:        scheduleHandler.GetScheduleHandler,
		SaveScheduleHandler:       scheduleHandler.SaveScheduleHandler,
		OpenSessionHandler:        scheduleHandler.OpenSessionHandler,
		ApplySessionActionHandler: scheduleHandler.ApplySessionActionHandler,
		SaveSessionHandler:        scheduleHandler.SaveSessionHandler,
		DiscardSessionHandler:     scheduleHandler.DiscardSessionHandler,

		// Appointment endpoints.
		BookAppointmentHandler:         appointmentHandler.BookAppointmentHandler,
		ListPatientAppointmentsHandler: appointmentHandler.ListPatientAppointmentsHandler,
		ListDoctorAppointmentsHandler:  appointmentHandler.ListDoctorAppointmentsHandler,
		RescheduleAppointmentHandler:   appointmentHandler.RescheduleAppointmentHandler,
		CancelAppointmentHandler:       appointmentHandler.CancelAppointmentHandler,
		UpdateAppointmentStatusHandler: appointmentHandler.UpdateAppointmentStatusHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker that sweeps missed appointments.
	cron.InitExpiryWorker(apptRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
