package availability

import (
	"testing"

	"medibook/models"
)

func TestTemplateShape(t *testing.T) {
	slots := AllSlots()
	if len(slots) != 12 {
		t.Fatalf("expected 12 template slots, got %d", len(slots))
	}
	if len(MorningSlots()) != 6 {
		t.Errorf("expected 6 morning slots, got %d", len(MorningSlots()))
	}
	if len(AfternoonSlots()) != 6 {
		t.Errorf("expected 6 afternoon slots, got %d", len(AfternoonSlots()))
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].Minute <= slots[i-1].Minute {
			t.Errorf("template not in start-time order at index %d: %d after %d",
				i, slots[i].Minute, slots[i-1].Minute)
		}
	}
}

func TestTemplateWindows(t *testing.T) {
	morning := MorningSlots()
	if morning[0].Minute != 9*60 {
		t.Errorf("morning starts at minute %d, want %d", morning[0].Minute, 9*60)
	}
	if last := morning[len(morning)-1].Minute; last != 11*60+30 {
		t.Errorf("morning ends at minute %d, want %d", last, 11*60+30)
	}

	afternoon := AfternoonSlots()
	if afternoon[0].Minute != 14*60 {
		t.Errorf("afternoon starts at minute %d, want %d", afternoon[0].Minute, 14*60)
	}
	if last := afternoon[len(afternoon)-1].Minute; last != 16*60+30 {
		t.Errorf("afternoon ends at minute %d, want %d", last, 16*60+30)
	}

	for _, s := range morning {
		if s.TimeOfDay != models.Morning {
			t.Errorf("slot %s tagged %q, want morning", s.Label, s.TimeOfDay)
		}
	}
	for _, s := range afternoon {
		if s.TimeOfDay != models.Afternoon {
			t.Errorf("slot %s tagged %q, want afternoon", s.Label, s.TimeOfDay)
		}
	}
}

func TestLabelZeroPadded(t *testing.T) {
	cases := []struct {
		minute int
		want   string
	}{
		{9 * 60, "09:00 AM"},
		{9*60 + 30, "09:30 AM"},
		{11*60 + 30, "11:30 AM"},
		{14 * 60, "02:00 PM"},
		{16*60 + 30, "04:30 PM"},
	}
	for _, c := range cases {
		if got := Label(c.minute); got != c.want {
			t.Errorf("Label(%d) = %q, want %q", c.minute, got, c.want)
		}
	}
}

func TestSlotAt(t *testing.T) {
	if _, ok := SlotAt(9 * 60); !ok {
		t.Error("09:00 AM should be a template slot")
	}
	if _, ok := SlotAt(12 * 60); ok {
		t.Error("12:00 PM is outside both windows and must not match")
	}
	if _, ok := SlotAt(9*60 + 15); ok {
		t.Error("quarter-hour minute must not match the half-hour grid")
	}
}

func TestAllSlotsReturnsCopy(t *testing.T) {
	a := AllSlots()
	a[0].Minute = -1
	if AllSlots()[0].Minute == -1 {
		t.Fatal("mutating the returned slice must not affect the template")
	}
}
