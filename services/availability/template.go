package availability

import (
	"time"

	"medibook/models"
)

// labelLayout formats a slot start time with a zero-padded hour so labels are
// stable for display. Comparisons always use the minute key, never the label.
const labelLayout = "03:04 PM"

// SlotLengthMinutes is the duration of every template slot.
const SlotLengthMinutes = 30

var template = buildTemplate()

func buildTemplate() []models.TimeSlot {
	var slots []models.TimeSlot
	// Morning window: 09:00 AM to 11:30 AM, half-hour spaced.
	for m := 9 * 60; m <= 11*60+30; m += SlotLengthMinutes {
		slots = append(slots, newSlot(m, models.Morning))
	}
	// Afternoon window: 02:00 PM to 04:30 PM.
	for m := 14 * 60; m <= 16*60+30; m += SlotLengthMinutes {
		slots = append(slots, newSlot(m, models.Afternoon))
	}
	return slots
}

func newSlot(minute int, tod models.TimeOfDay) models.TimeSlot {
	return models.TimeSlot{
		Label:     Label(minute),
		TimeOfDay: tod,
		Minute:    minute,
	}
}

// Label formats a minutes-from-midnight key as a display label, e.g. "09:00 AM".
func Label(minute int) string {
	t := time.Date(0, time.January, 1, minute/60, minute%60, 0, 0, time.UTC)
	return t.Format(labelLayout)
}

// AllSlots returns the canonical daily slot template in start-time order.
func AllSlots() []models.TimeSlot {
	out := make([]models.TimeSlot, len(template))
	copy(out, template)
	return out
}

// SlotAt returns the template slot with the given minute key.
func SlotAt(minute int) (models.TimeSlot, bool) {
	for _, s := range template {
		if s.Minute == minute {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}

// MorningSlots returns the morning partition of the template.
func MorningSlots() []models.TimeSlot {
	return slotsFor(models.Morning)
}

// AfternoonSlots returns the afternoon partition of the template.
func AfternoonSlots() []models.TimeSlot {
	return slotsFor(models.Afternoon)
}

func slotsFor(tod models.TimeOfDay) []models.TimeSlot {
	var out []models.TimeSlot
	for _, s := range template {
		if s.TimeOfDay == tod {
			out = append(out, s)
		}
	}
	return out
}
