package tasks

import (
	"encoding/json"
	"time"

	"medibook/config"
	"medibook/models"

	"github.com/hibiken/asynq"
)

// TypeAppointmentExpire marks appointments that were never attended.
const TypeAppointmentExpire = "appointment:expire"

// NewExpireTask builds the delayed no-show sweep task for an appointment,
// fired once its slot has fully passed.
func NewExpireTask(appointmentID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.ExpiryPayload{AppointmentID: appointmentID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// Scheduler enqueues delayed appointment maintenance tasks.
type Scheduler interface {
	ScheduleExpiry(appointmentID string, fireAt time.Time) error
}

// AsynqScheduler is the production Scheduler backed by the task queue.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler constructs a Scheduler using the configured Redis queue.
func NewAsynqScheduler() *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &AsynqScheduler{client: client}
}

func (s *AsynqScheduler) ScheduleExpiry(appointmentID string, fireAt time.Time) error {
	task, opts, err := NewExpireTask(appointmentID, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

// Close releases the underlying queue client.
func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
