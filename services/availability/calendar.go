package availability

import (
	"sort"
	"time"

	"medibook/models"
)

// Calendar is the in-memory leave state for one doctor. All mutations are
// local until the caller persists a Snapshot; a failed save leaves the edits
// intact so they can be retried.
type Calendar struct {
	doctorID string
	fullDays map[string]bool
	slots    map[string]map[int]bool // date -> blocked slot minutes
	undo     *UndoSnapshot
}

// UndoSnapshot captures one date's leave state before a mutation. Only a
// single level of history is retained; each mutation overwrites it.
type UndoSnapshot struct {
	Date    string `json:"date"`
	FullDay bool   `json:"fullDay"`
	Minutes []int  `json:"minutes"`
}

// CalendarState is the serializable form of a Calendar, used to park an edit
// session in the cache between requests.
type CalendarState struct {
	Schedule models.DoctorSchedule `json:"schedule"`
	Undo     *UndoSnapshot         `json:"undo,omitempty"`
}

// NewCalendar returns an empty calendar for a doctor with no saved leaves.
func NewCalendar(doctorID string) *Calendar {
	return &Calendar{
		doctorID: doctorID,
		fullDays: make(map[string]bool),
		slots:    make(map[string]map[int]bool),
	}
}

// CalendarFromSchedule builds a calendar from a persisted schedule. Leave
// entries whose minute key does not match a template slot make the schedule
// invalid rather than being silently dropped.
func CalendarFromSchedule(sched *models.DoctorSchedule) (*Calendar, error) {
	cal := NewCalendar(sched.DoctorID)
	for _, d := range sched.FullDayLeaves {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, NewInvalidSchedule("unparseable full-day leave date "+d, err)
		}
		cal.fullDays[d] = true
	}
	for _, ls := range sched.LeaveSlots {
		if _, err := time.Parse("2006-01-02", ls.Date); err != nil {
			return nil, NewInvalidSchedule("unparseable leave slot date "+ls.Date, err)
		}
		if _, ok := SlotAt(ls.Minute); !ok {
			return nil, NewInvalidSchedule("leave slot "+Label(ls.Minute)+" does not match the slot template", nil)
		}
		cal.daySlots(ls.Date)[ls.Minute] = true
	}
	return cal, nil
}

// CalendarFromState restores a calendar, including its undo buffer, from a
// parked edit session.
func CalendarFromState(st CalendarState) (*Calendar, error) {
	cal, err := CalendarFromSchedule(&st.Schedule)
	if err != nil {
		return nil, err
	}
	cal.undo = st.Undo
	return cal, nil
}

// DoctorID returns the owning doctor's ID.
func (c *Calendar) DoctorID() string {
	return c.doctorID
}

// State returns the serializable form of the calendar.
func (c *Calendar) State() CalendarState {
	return CalendarState{Schedule: *c.Snapshot(), Undo: c.undo}
}

// Snapshot composes the persisted schedule shape. Empty per-slot sets are
// pruned and output ordering is deterministic.
func (c *Calendar) Snapshot() *models.DoctorSchedule {
	sched := &models.DoctorSchedule{DoctorID: c.doctorID}
	for d := range c.fullDays {
		sched.FullDayLeaves = append(sched.FullDayLeaves, d)
	}
	sort.Strings(sched.FullDayLeaves)
	var dates []string
	for d, set := range c.slots {
		if len(set) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	for _, d := range dates {
		for _, m := range sortedMinutes(c.slots[d]) {
			sched.LeaveSlots = append(sched.LeaveSlots, models.LeaveSlot{Date: d, Minute: m})
		}
	}
	return sched
}

// IsFullDayBlocked reports whether the date is a full-day leave.
func (c *Calendar) IsFullDayBlocked(date string) bool {
	return c.fullDays[date]
}

// BlockedSlots returns the blocked slot minutes for a date. A full-day leave
// covers every template slot regardless of the explicit per-slot entries.
func (c *Calendar) BlockedSlots(date string) map[int]bool {
	blocked := make(map[int]bool)
	if c.fullDays[date] {
		for _, s := range AllSlots() {
			blocked[s.Minute] = true
		}
		return blocked
	}
	for m := range c.slots[date] {
		blocked[m] = true
	}
	return blocked
}

// ToggleFullDay flips the full-day leave state of a date. Blocking also sets
// the per-slot set to the entire template so "full-day implies all slots
// blocked" keeps holding if the flag is later cleared slot by slot;
// unblocking clears the per-slot set.
func (c *Calendar) ToggleFullDay(date string) {
	c.capture(date)
	if c.fullDays[date] {
		delete(c.fullDays, date)
		delete(c.slots, date)
		return
	}
	c.fullDays[date] = true
	set := make(map[int]bool)
	for _, s := range AllSlots() {
		set[s.Minute] = true
	}
	c.slots[date] = set
}

// ToggleSlot flips membership of one slot in the date's leave set. It never
// touches the full-day flag.
func (c *Calendar) ToggleSlot(date string, minute int) {
	c.capture(date)
	set := c.daySlots(date)
	if set[minute] {
		delete(set, minute)
	} else {
		set[minute] = true
	}
}

// BlockRange bulk-inserts slots into the date's leave set. Used for the
// "block all morning" / "block all afternoon" quick actions.
func (c *Calendar) BlockRange(date string, minutes []int) {
	c.capture(date)
	set := c.daySlots(date)
	for _, m := range minutes {
		set[m] = true
	}
}

// Clear removes the full-day flag and empties the per-slot set for a date.
func (c *Calendar) Clear(date string) {
	c.capture(date)
	delete(c.fullDays, date)
	delete(c.slots, date)
}

// Undo restores the state captured before the last mutation. It reports
// whether there was anything to undo; the buffer is consumed either way.
func (c *Calendar) Undo() bool {
	if c.undo == nil {
		return false
	}
	snap := c.undo
	c.undo = nil
	if snap.FullDay {
		c.fullDays[snap.Date] = true
	} else {
		delete(c.fullDays, snap.Date)
	}
	set := make(map[int]bool, len(snap.Minutes))
	for _, m := range snap.Minutes {
		set[m] = true
	}
	if len(set) > 0 {
		c.slots[snap.Date] = set
	} else {
		delete(c.slots, snap.Date)
	}
	return true
}

func (c *Calendar) capture(date string) {
	c.undo = &UndoSnapshot{
		Date:    date,
		FullDay: c.fullDays[date],
		Minutes: sortedMinutes(c.slots[date]),
	}
}

func (c *Calendar) daySlots(date string) map[int]bool {
	set, ok := c.slots[date]
	if !ok {
		set = make(map[int]bool)
		c.slots[date] = set
	}
	return set
}

func sortedMinutes(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}
