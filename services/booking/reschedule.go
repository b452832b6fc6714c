package booking

import (
	"context"
	"time"

	"medibook/models"
	"medibook/services/availability"
)

// ReschedulePolicy validates a reschedule target against the availability
// resolver. It only validates; persisting the new date/time is the caller's
// responsibility.
type ReschedulePolicy struct {
	Resolver *availability.Resolver
}

// Validate checks that (newDate, newMinute) is a bookable target for the
// given appointment and returns the canonical new start instant.
//
// The appointment's own current slot resolves as booked, so selecting it is
// normally rejected as a no-op reschedule; confirmSame lets a caller
// explicitly re-confirm the unchanged slot.
func (p *ReschedulePolicy) Validate(ctx context.Context, current *models.Appointment, newDate string, newMinute int, now time.Time, confirmSame bool) (time.Time, error) {
	slot, ok := availability.SlotAt(newMinute)
	if !ok {
		return time.Time{}, availability.NewSlotUnavailable("requested time does not match a template slot")
	}

	startAt, err := availability.SlotStart(newDate, newMinute, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if !startAt.After(now) {
		return time.Time{}, availability.NewPastDate("requested slot is not in the future")
	}

	if newDate == current.Date && newMinute == current.SlotMinute {
		if confirmSame {
			return startAt, nil
		}
		return time.Time{}, availability.NewSlotUnavailable("appointment already holds this slot")
	}

	result, err := p.Resolver.Resolve(ctx, current.DoctorID, newDate, now)
	if err != nil {
		return time.Time{}, err
	}
	for _, sa := range result.Slots {
		if sa.Slot.Minute == slot.Minute {
			if !sa.Bookable {
				return time.Time{}, availability.NewSlotUnavailable("slot " + slot.Label + " on " + newDate + " is not available")
			}
			return startAt, nil
		}
	}
	return time.Time{}, availability.NewSlotUnavailable("requested time does not match a template slot")
}
