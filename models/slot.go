package models

// TimeOfDay partitions the daily slot template.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
)

// TimeSlot is one entry of the fixed daily slot template.
type TimeSlot struct {
	Label     string    `json:"label"`     // display form, e.g. "09:00 AM"
	TimeOfDay TimeOfDay `json:"timeOfDay"` // "morning" or "afternoon"
	Minute    int       `json:"minute"`    // minutes from midnight; the canonical sort and compare key
}

// SlotAvailability tags one template slot with its bookable state for a query date.
type SlotAvailability struct {
	Slot     TimeSlot `json:"slot"`
	Bookable bool     `json:"bookable"`
}

// AvailabilityResult is the ordered slot list returned for a (doctor, date) query.
type AvailabilityResult struct {
	DoctorID string             `json:"doctorId"`
	Date     string             `json:"date"` // "YYYY-MM-DD"
	Slots    []SlotAvailability `json:"slots"`
}
