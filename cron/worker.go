package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the async worker in background. It processes the
// delayed no-show sweep tasks enqueued at booking and reschedule time.
func InitExpiryWorker(apptRepo appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentExpire, handleExpireTask(apptRepo))

	// Start async worker with retry logic
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleExpireTask marks an appointment as noShow if nobody moved it out of
// its booked state by the time its slot passed. Appointments already in
// progress or in a terminal state are left alone.
func handleExpireTask(apptRepo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}

		appt, err := apptRepo.GetByID(ctx, p.AppointmentID)
		if err != nil {
			log.Printf("[ExpiryWorker] failed to load appointment %s: %v", p.AppointmentID, err)
			return err
		}

		switch appt.Status {
		case models.StatusScheduled, models.StatusRescheduled:
			start, err := availability.SlotStart(appt.Date, appt.SlotMinute, time.Local)
			if err != nil {
				log.Printf("[ExpiryWorker] appointment %s has malformed date %q: %v", appt.ID, appt.Date, err)
				return err
			}
			// A reschedule enqueues a fresh sweep for the new slot, but the
			// task for the old slot still fires. Sweep only once the
			// appointment's current slot has actually passed.
			if time.Now().Before(start.Add(availability.SlotLengthMinutes * time.Minute)) {
				return nil
			}
			if err := apptRepo.UpdateStatus(ctx, appt.ID, models.StatusNoShow); err != nil {
				log.Printf("[ExpiryWorker] failed to mark appointment %s as noShow: %v", appt.ID, err)
				return err
			}
			log.Printf("[ExpiryWorker] appointment %s marked as noShow", appt.ID)
		default:
			// Finished or in-progress appointments are left alone.
		}
		return nil
	}
}
