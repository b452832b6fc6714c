package availability

import (
	"context"
	"time"

	"medibook/models"
)

// SameDayBufferMinutes is the lead time required for same-day bookings: a
// slot starting within this window of the current time is not bookable.
const SameDayBufferMinutes = 30

// DateLayout is the calendar-date wire format used throughout the engine.
const DateLayout = "2006-01-02"

// ScheduleSource supplies the persisted leave schedule for a doctor.
type ScheduleSource interface {
	GetDoctorSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error)
}

// Resolver derives the bookable slot list for a (doctor, date) pair from the
// slot template, the doctor's leave calendar and the booking index. It is the
// single authority consumed by the booking, reschedule and slot-manager flows.
type Resolver struct {
	Schedules    ScheduleSource
	Appointments AppointmentSource
}

// NewResolver constructs a Resolver.
func NewResolver(schedules ScheduleSource, appointments AppointmentSource) *Resolver {
	return &Resolver{Schedules: schedules, Appointments: appointments}
}

// Resolve returns every template slot for the date tagged with its bookable
// state. A store failure surfaces as a dataUnavailable error; the resolver
// never falls back to "all available".
func (r *Resolver) Resolve(ctx context.Context, doctorID, date string, now time.Time) (*models.AvailabilityResult, error) {
	if _, err := time.ParseInLocation(DateLayout, date, now.Location()); err != nil {
		return nil, NewInvalidSchedule("malformed date "+date, err)
	}

	sched, err := r.Schedules.GetDoctorSchedule(ctx, doctorID)
	if err != nil {
		return nil, NewDataUnavailable(err)
	}
	cal, err := CalendarFromSchedule(sched)
	if err != nil {
		return nil, err
	}

	result := &models.AvailabilityResult{DoctorID: doctorID, Date: date}

	if cal.IsFullDayBlocked(date) {
		for _, s := range AllSlots() {
			result.Slots = append(result.Slots, models.SlotAvailability{Slot: s})
		}
		return result, nil
	}

	blocked := cal.BlockedSlots(date)
	booked, err := BookedSlots(ctx, r.Appointments, doctorID, date)
	if err != nil {
		return nil, err
	}
	for m := range booked {
		blocked[m] = true
	}

	// The same-day buffer applies only when the query date is today; other
	// dates get no time-of-day filtering at all.
	cutoff := -1
	if date == now.Format(DateLayout) {
		cutoff = now.Hour()*60 + now.Minute() + SameDayBufferMinutes
	}

	for _, s := range AllSlots() {
		bookable := !blocked[s.Minute]
		if cutoff >= 0 && s.Minute <= cutoff {
			bookable = false
		}
		result.Slots = append(result.Slots, models.SlotAvailability{Slot: s, Bookable: bookable})
	}
	return result, nil
}

// SlotStart composes a date and template minute into a wall-clock instant in
// the given location.
func SlotStart(date string, minute int, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, NewInvalidSchedule("malformed date "+date, err)
	}
	return day.Add(time.Duration(minute) * time.Minute), nil
}
