package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingRequest is the payload for booking a slot.
type BookingRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Minute   int    `json:"minute"`
	Notes    string `json:"notes"`
}

type BookingService interface {
	BookSlot(ctx context.Context, patientID string, req BookingRequest, now time.Time) (*models.Appointment, error)
	Reschedule(ctx context.Context, appointmentID, patientID, newDate string, newMinute int, confirmSame bool, now time.Time) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID, patientID string, now time.Time) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, doctorID string, status models.AppointmentStatus) (*models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     appointmentRepo.AppointmentRepository
	Resolver *availability.Resolver
	Policy   *ReschedulePolicy
	Tasks    tasks.Scheduler
}

// BookSlot validates the requested slot through the availability resolver and
// creates the appointment. The resolver failing closed means a schedule fetch
// error blocks the booking instead of silently ignoring the doctor's leaves.
func (s *DefaultBookingService) BookSlot(ctx context.Context, patientID string, req BookingRequest, now time.Time) (*models.Appointment, error) {
	slot, ok := availability.SlotAt(req.Minute)
	if !ok {
		return nil, availability.NewSlotUnavailable("requested time does not match a template slot")
	}

	startAt, err := availability.SlotStart(req.Date, req.Minute, now.Location())
	if err != nil {
		return nil, err
	}
	if !startAt.After(now) {
		return nil, availability.NewPastDate("requested slot is not in the future")
	}

	result, err := s.Resolver.Resolve(ctx, req.DoctorID, req.Date, now)
	if err != nil {
		return nil, err
	}
	for _, sa := range result.Slots {
		if sa.Slot.Minute == slot.Minute && !sa.Bookable {
			return nil, availability.NewSlotUnavailable("slot " + slot.Label + " on " + req.Date + " is not available")
		}
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		DoctorID:   req.DoctorID,
		PatientID:  patientID,
		Date:       req.Date,
		SlotMinute: slot.Minute,
		SlotLabel:  slot.Label,
		Status:     models.StatusScheduled,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		// The unique slot index catches bookings that raced past the
		// availability check.
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, availability.NewSlotUnavailable("slot " + slot.Label + " on " + req.Date + " was just booked")
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.scheduleExpiry(appt.ID, startAt)
	return appt, nil
}

// Reschedule validates the new target through the policy and moves the
// appointment, transitioning its status to rescheduled.
func (s *DefaultBookingService) Reschedule(ctx context.Context, appointmentID, patientID, newDate string, newMinute int, confirmSame bool, now time.Time) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, fmt.Errorf("appointment %s does not belong to this patient", appointmentID)
	}
	if !appt.Status.OccupiesSlot() {
		return nil, fmt.Errorf("appointment %s can no longer be rescheduled", appointmentID)
	}

	startAt, err := s.Policy.Validate(ctx, appt, newDate, newMinute, now, confirmSame)
	if err != nil {
		return nil, err
	}

	label := availability.Label(newMinute)
	if err := s.Repo.UpdateDateTime(ctx, appointmentID, newDate, newMinute, label); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, availability.NewSlotUnavailable("slot " + label + " on " + newDate + " was just booked")
		}
		return nil, err
	}

	appt.Date = newDate
	appt.SlotMinute = newMinute
	appt.SlotLabel = label
	appt.Status = models.StatusRescheduled
	appt.UpdatedAt = now

	s.scheduleExpiry(appt.ID, startAt)
	return appt, nil
}

// Cancel releases a future appointment's slot. Cancelling after the slot has
// started is rejected.
func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID, patientID string, now time.Time) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, fmt.Errorf("appointment %s does not belong to this patient", appointmentID)
	}
	if !appt.Status.OccupiesSlot() {
		return nil, fmt.Errorf("appointment %s is not active", appointmentID)
	}

	startAt, err := availability.SlotStart(appt.Date, appt.SlotMinute, now.Location())
	if err != nil {
		return nil, err
	}
	if now.After(startAt) {
		return nil, fmt.Errorf("cannot cancel appointment %s: slot has already started", appointmentID)
	}

	if err := s.Repo.UpdateStatus(ctx, appointmentID, models.StatusCancelled); err != nil {
		return nil, err
	}
	appt.Status = models.StatusCancelled
	appt.UpdatedAt = now
	return appt, nil
}

// UpdateStatus applies a doctor-driven status transition.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, appointmentID, doctorID string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown appointment status %q", status)
	}
	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, fmt.Errorf("appointment %s does not belong to this doctor", appointmentID)
	}
	if appt.Status.Terminal() {
		return nil, fmt.Errorf("appointment %s is already %s", appointmentID, appt.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	return appt, nil
}

func (s *DefaultBookingService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.Repo.ListByDoctor(ctx, doctorID)
}

func (s *DefaultBookingService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.Repo.ListByPatient(ctx, patientID)
}

// scheduleExpiry enqueues the no-show sweep for when the slot has fully
// passed. Enqueue failures are logged but never fail the booking itself.
func (s *DefaultBookingService) scheduleExpiry(appointmentID string, startAt time.Time) {
	if s.Tasks == nil {
		return
	}
	fireAt := startAt.Add(availability.SlotLengthMinutes * time.Minute)
	if err := s.Tasks.ScheduleExpiry(appointmentID, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule appointment expiry task",
			zap.String("appointmentID", appointmentID), zap.Error(err))
	}
}
