package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusInProgress  AppointmentStatus = "inProgress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "noShow"
)

// Valid reports whether s is a known status value.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// OccupiesSlot reports whether an appointment in this status still holds its slot.
// Cancelled, completed and no-show appointments free the slot for re-booking.
func (s AppointmentStatus) OccupiesSlot() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusInProgress:
		return true
	}
	return false
}

// Terminal reports whether no further status transitions are allowed.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment represents a booked consultation record.
type Appointment struct {
	ID         string            `bson:"id" json:"id"`
	DoctorID   string            `bson:"doctor_id" json:"doctorId"`
	PatientID  string            `bson:"patient_id" json:"patientId"`
	Date       string            `bson:"date" json:"date"` // "YYYY-MM-DD"
	SlotMinute int               `bson:"slot_minute" json:"slotMinute"`
	SlotLabel  string            `bson:"slot_label" json:"slotLabel"`
	Status     AppointmentStatus `bson:"status" json:"status"`
	Notes      string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updated_at" json:"updatedAt"`
}

// ExpiryPayload is the task payload for the no-show sweeper.
type ExpiryPayload struct {
	AppointmentID string `json:"appointmentId"`
}
