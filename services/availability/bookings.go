package availability

import (
	"context"

	"medibook/models"
)

// AppointmentSource supplies the appointments for a doctor on a date.
type AppointmentSource interface {
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
}

// BookedSlots builds the booking index for a (doctor, date) pair: the set of
// template minutes held by appointments in an occupying status. The index is
// recomputed per query and never cached across queries.
func BookedSlots(ctx context.Context, src AppointmentSource, doctorID, date string) (map[int]bool, error) {
	appts, err := src.GetByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, NewDataUnavailable(err)
	}
	booked := make(map[int]bool)
	for _, a := range appts {
		if a.Status.OccupiesSlot() {
			booked[a.SlotMinute] = true
		}
	}
	return booked, nil
}
