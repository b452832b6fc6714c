package models

import "time"

// LeaveSlot pins a single blocked template slot on a date.
type LeaveSlot struct {
	Date   string `bson:"date" json:"date"`     // "YYYY-MM-DD"
	Minute int    `bson:"minute" json:"minute"` // minutes from midnight; must match a template slot
}

// DoctorSchedule is the persisted leave record for one doctor.
// Saves are full overwrites; there is no partial update path.
type DoctorSchedule struct {
	DoctorID      string      `bson:"doctor_id" json:"doctorId"`
	FullDayLeaves []string    `bson:"full_day_leaves" json:"fullDayLeaves"` // dates with no bookable slots at all
	LeaveSlots    []LeaveSlot `bson:"leave_slots" json:"leaveSlots"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updatedAt"`
}
