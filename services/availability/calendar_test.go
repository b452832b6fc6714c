package availability

import (
	"reflect"
	"testing"

	"medibook/models"
)

const testDate = "2024-06-10"

func TestToggleFullDayBlocksEveryTemplateSlot(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleFullDay(testDate)

	if !cal.IsFullDayBlocked(testDate) {
		t.Fatal("date should be full-day blocked after toggle")
	}
	blocked := cal.BlockedSlots(testDate)
	for _, s := range AllSlots() {
		if !blocked[s.Minute] {
			t.Errorf("slot %s not blocked on a full-day leave", s.Label)
		}
	}
}

func TestToggleFullDayTwiceDoesNotRestorePriorSlots(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleSlot(testDate, 9*60)
	cal.ToggleSlot(testDate, 14*60)

	cal.ToggleFullDay(testDate) // block
	cal.ToggleFullDay(testDate) // unblock

	if cal.IsFullDayBlocked(testDate) {
		t.Fatal("second toggle should clear the full-day flag")
	}
	// Unblocking is a clear, not a restore. The explicit per-slot set from
	// before the first toggle does not come back.
	if blocked := cal.BlockedSlots(testDate); len(blocked) != 0 {
		t.Errorf("expected no blocked slots after unblock, got %v", blocked)
	}
}

func TestUndoRestoresExactPriorState(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleSlot(testDate, 9*60)
	cal.ToggleSlot(testDate, 14*60)

	cal.ToggleFullDay(testDate)
	if !cal.Undo() {
		t.Fatal("undo should report a restored mutation")
	}

	if cal.IsFullDayBlocked(testDate) {
		t.Error("undo should clear the full-day flag set by the last toggle")
	}
	want := map[int]bool{9 * 60: true, 14 * 60: true}
	if got := cal.BlockedSlots(testDate); !reflect.DeepEqual(got, want) {
		t.Errorf("undo restored %v, want %v", got, want)
	}

	// Buffer is single-level and consumed.
	if cal.Undo() {
		t.Error("second undo should find an empty buffer")
	}
}

func TestUndoIsOneLevelDeep(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleSlot(testDate, 9*60)
	cal.ToggleSlot(testDate, 9*60+30)

	if !cal.Undo() {
		t.Fatal("undo should succeed")
	}
	// Only the second toggle is rolled back.
	want := map[int]bool{9 * 60: true}
	if got := cal.BlockedSlots(testDate); !reflect.DeepEqual(got, want) {
		t.Errorf("after undo got %v, want %v", got, want)
	}
}

func TestToggleSlotFlipsMembership(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleSlot(testDate, 9*60)
	if !cal.BlockedSlots(testDate)[9*60] {
		t.Fatal("slot should be blocked after first toggle")
	}
	cal.ToggleSlot(testDate, 9*60)
	if cal.BlockedSlots(testDate)[9*60] {
		t.Fatal("slot should be unblocked after second toggle")
	}
}

func TestBlockRangeAndClear(t *testing.T) {
	cal := NewCalendar("doc-1")
	var morning []int
	for _, s := range MorningSlots() {
		morning = append(morning, s.Minute)
	}
	cal.BlockRange(testDate, morning)

	blocked := cal.BlockedSlots(testDate)
	for _, m := range morning {
		if !blocked[m] {
			t.Errorf("minute %d should be blocked after BlockRange", m)
		}
	}
	if blocked[14*60] {
		t.Error("afternoon slot should be untouched by morning BlockRange")
	}

	cal.Clear(testDate)
	if got := cal.BlockedSlots(testDate); len(got) != 0 {
		t.Errorf("expected empty set after Clear, got %v", got)
	}
}

func TestSnapshotIsDeterministicAndPruned(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleSlot("2024-06-11", 14*60)
	cal.ToggleSlot(testDate, 9*60+30)
	cal.ToggleSlot(testDate, 9*60)
	cal.ToggleFullDay("2024-06-12")
	// Empty a date's set; it must not appear in the snapshot.
	cal.ToggleSlot("2024-06-13", 9*60)
	cal.ToggleSlot("2024-06-13", 9*60)

	snap := cal.Snapshot()
	if !reflect.DeepEqual(snap.FullDayLeaves, []string{"2024-06-12"}) {
		t.Errorf("full-day leaves = %v, want [2024-06-12]", snap.FullDayLeaves)
	}
	want := []models.LeaveSlot{
		{Date: testDate, Minute: 9 * 60},
		{Date: testDate, Minute: 9*60 + 30},
		{Date: "2024-06-11", Minute: 14 * 60},
		// 2024-06-12 carries the full template from the full-day toggle.
	}
	if len(snap.LeaveSlots) != len(want)+len(AllSlots()) {
		t.Fatalf("leave slots = %v", snap.LeaveSlots)
	}
	if !reflect.DeepEqual(snap.LeaveSlots[:3], want) {
		t.Errorf("leave slots prefix = %v, want %v", snap.LeaveSlots[:3], want)
	}
}

func TestCalendarRoundTripsThroughState(t *testing.T) {
	cal := NewCalendar("doc-1")
	cal.ToggleSlot(testDate, 9*60)
	cal.ToggleFullDay("2024-06-12")

	restored, err := CalendarFromState(cal.State())
	if err != nil {
		t.Fatalf("CalendarFromState: %v", err)
	}
	if !restored.IsFullDayBlocked("2024-06-12") {
		t.Error("full-day leave lost in round trip")
	}
	if !restored.BlockedSlots(testDate)[9*60] {
		t.Error("slot leave lost in round trip")
	}
	// The undo buffer survives the round trip too.
	if !restored.Undo() {
		t.Error("undo buffer lost in round trip")
	}
}

func TestCalendarFromScheduleRejectsBadData(t *testing.T) {
	_, err := CalendarFromSchedule(&models.DoctorSchedule{
		DoctorID:      "doc-1",
		FullDayLeaves: []string{"June 10"},
	})
	if CodeOf(err) != CodeInvalidSchedule {
		t.Errorf("unparseable date: got %v, want invalidSchedule", err)
	}

	_, err = CalendarFromSchedule(&models.DoctorSchedule{
		DoctorID:   "doc-1",
		LeaveSlots: []models.LeaveSlot{{Date: testDate, Minute: 12 * 60}},
	})
	if CodeOf(err) != CodeInvalidSchedule {
		t.Errorf("off-template minute: got %v, want invalidSchedule", err)
	}
}
