package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/availability"
)

type fakeAppointmentRepo struct {
	appts     map[string]*models.Appointment
	err       error
	createErr error
}

func newFakeAppointmentRepo(appts ...*models.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appts: make(map[string]*models.Appointment)}
	for _, a := range appts {
		repo.appts[a.ID] = a
	}
	return repo
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.err != nil {
		return f.err
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	appt, ok := f.appts[id]
	if !ok {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	appt, ok := f.appts[id]
	if !ok {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointmentRepo) UpdateDateTime(ctx context.Context, id, date string, minute int, label string) error {
	appt, ok := f.appts[id]
	if !ok {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	appt.Date = date
	appt.SlotMinute = minute
	appt.SlotLabel = label
	appt.Status = models.StatusRescheduled
	return nil
}

type fakeScheduleSource struct {
	sched *models.DoctorSchedule
	err   error
}

func (f *fakeScheduleSource) GetDoctorSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sched != nil {
		return f.sched, nil
	}
	return &models.DoctorSchedule{DoctorID: doctorID}, nil
}

func newTestService(repo *fakeAppointmentRepo, sched *fakeScheduleSource) *DefaultBookingService {
	if sched == nil {
		sched = &fakeScheduleSource{}
	}
	resolver := availability.NewResolver(sched, repo)
	return &DefaultBookingService{
		Repo:     repo,
		Resolver: resolver,
		Policy:   &ReschedulePolicy{Resolver: resolver},
	}
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestBookSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newTestService(repo, nil)

	appt, err := svc.BookSlot(context.Background(), "pat-1", BookingRequest{
		DoctorID: "doc-1",
		Date:     "2024-06-11",
		Minute:   9 * 60,
	}, at(t, "2024-06-10 08:00"))
	if err != nil {
		t.Fatalf("BookSlot: %v", err)
	}
	if appt.Status != models.StatusScheduled {
		t.Errorf("status = %s, want scheduled", appt.Status)
	}
	if appt.SlotLabel != "09:00 AM" {
		t.Errorf("label = %q, want 09:00 AM", appt.SlotLabel)
	}
	if _, ok := repo.appts[appt.ID]; !ok {
		t.Error("appointment not persisted")
	}
}

func TestBookSlotRejectsOffTemplateMinute(t *testing.T) {
	svc := newTestService(newFakeAppointmentRepo(), nil)
	_, err := svc.BookSlot(context.Background(), "pat-1", BookingRequest{
		DoctorID: "doc-1", Date: "2024-06-11", Minute: 12 * 60,
	}, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodeSlotUnavailable {
		t.Fatalf("got %v, want slotUnavailable", err)
	}
}

func TestBookSlotRejectsPast(t *testing.T) {
	svc := newTestService(newFakeAppointmentRepo(), nil)
	_, err := svc.BookSlot(context.Background(), "pat-1", BookingRequest{
		DoctorID: "doc-1", Date: "2024-06-09", Minute: 9 * 60,
	}, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodePastDate {
		t.Fatalf("got %v, want pastDate", err)
	}
}

func TestBookSlotRejectsTakenSlot(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-2",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)

	_, err := svc.BookSlot(context.Background(), "pat-1", BookingRequest{
		DoctorID: "doc-1", Date: "2024-06-11", Minute: 9 * 60,
	}, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodeSlotUnavailable {
		t.Fatalf("got %v, want slotUnavailable", err)
	}
}

func TestBookSlotMapsRacedInsertToSlotUnavailable(t *testing.T) {
	// Both racers pass the availability check; the second insert hits the
	// unique slot index and must surface as slotUnavailable, not a 500.
	repo := newFakeAppointmentRepo()
	repo.createErr = appointmentRepo.ErrSlotTaken
	svc := newTestService(repo, nil)

	_, err := svc.BookSlot(context.Background(), "pat-1", BookingRequest{
		DoctorID: "doc-1", Date: "2024-06-11", Minute: 9 * 60,
	}, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodeSlotUnavailable {
		t.Fatalf("got %v, want slotUnavailable", err)
	}
}

func TestBookSlotFailsClosedOnScheduleError(t *testing.T) {
	svc := newTestService(newFakeAppointmentRepo(), &fakeScheduleSource{err: errors.New("mongo down")})
	_, err := svc.BookSlot(context.Background(), "pat-1", BookingRequest{
		DoctorID: "doc-1", Date: "2024-06-11", Minute: 9 * 60,
	}, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodeDataUnavailable {
		t.Fatalf("got %v, want dataUnavailable", err)
	}
}

func TestRescheduleMovesAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)

	appt, err := svc.Reschedule(context.Background(), "a1", "pat-1", "2024-06-12", 14*60, false, at(t, "2024-06-10 08:00"))
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if appt.Status != models.StatusRescheduled {
		t.Errorf("status = %s, want rescheduled", appt.Status)
	}
	if appt.Date != "2024-06-12" || appt.SlotMinute != 14*60 {
		t.Errorf("moved to %s %d, want 2024-06-12 840", appt.Date, appt.SlotMinute)
	}
	if appt.SlotLabel != "02:00 PM" {
		t.Errorf("label = %q, want 02:00 PM", appt.SlotLabel)
	}
}

func TestRescheduleSameSlotNeedsConfirm(t *testing.T) {
	current := &models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	}
	now := at(t, "2024-06-10 08:00")

	svc := newTestService(newFakeAppointmentRepo(current), nil)
	_, err := svc.Reschedule(context.Background(), "a1", "pat-1", "2024-06-11", 9*60, false, now)
	if availability.CodeOf(err) != availability.CodeSlotUnavailable {
		t.Fatalf("unconfirmed same slot: got %v, want slotUnavailable", err)
	}

	appt, err := svc.Reschedule(context.Background(), "a1", "pat-1", "2024-06-11", 9*60, true, now)
	if err != nil {
		t.Fatalf("confirmed same slot: %v", err)
	}
	if appt.Status != models.StatusRescheduled {
		t.Errorf("status = %s, want rescheduled", appt.Status)
	}
}

func TestRescheduleRejectsOtherPatientsSlot(t *testing.T) {
	repo := newFakeAppointmentRepo(
		&models.Appointment{
			ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
			Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
		},
		&models.Appointment{
			ID: "a2", DoctorID: "doc-1", PatientID: "pat-2",
			Date: "2024-06-11", SlotMinute: 14 * 60, Status: models.StatusScheduled,
		},
	)
	svc := newTestService(repo, nil)

	_, err := svc.Reschedule(context.Background(), "a1", "pat-1", "2024-06-11", 14*60, false, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodeSlotUnavailable {
		t.Fatalf("got %v, want slotUnavailable", err)
	}
}

func TestRescheduleRejectsWrongOwner(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)

	if _, err := svc.Reschedule(context.Background(), "a1", "pat-9", "2024-06-12", 14*60, false, at(t, "2024-06-10 08:00")); err == nil {
		t.Fatal("expected ownership error")
	}
}

func TestReschedulePastTarget(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)

	_, err := svc.Reschedule(context.Background(), "a1", "pat-1", "2024-06-09", 9*60, false, at(t, "2024-06-10 08:00"))
	if availability.CodeOf(err) != availability.CodePastDate {
		t.Fatalf("got %v, want pastDate", err)
	}
}

func TestCancelReleasesFutureSlot(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)

	appt, err := svc.Cancel(context.Background(), "a1", "pat-1", at(t, "2024-06-10 08:00"))
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if appt.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", appt.Status)
	}

	// The released slot is bookable again.
	result, err := svc.Resolver.Resolve(context.Background(), "doc-1", "2024-06-11", at(t, "2024-06-10 08:00"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, sa := range result.Slots {
		if sa.Slot.Minute == 9*60 && !sa.Bookable {
			t.Error("cancelled slot should be bookable again")
		}
	}
}

func TestCancelRejectsStartedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-10", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)

	if _, err := svc.Cancel(context.Background(), "a1", "pat-1", at(t, "2024-06-10 09:10")); err == nil {
		t.Fatal("expected error cancelling a started slot")
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newFakeAppointmentRepo(&models.Appointment{
		ID: "a1", DoctorID: "doc-1", PatientID: "pat-1",
		Date: "2024-06-11", SlotMinute: 9 * 60, Status: models.StatusScheduled,
	})
	svc := newTestService(repo, nil)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, "a1", "doc-1", "onHold"); err == nil {
		t.Error("unknown status should be rejected")
	}
	if _, err := svc.UpdateStatus(ctx, "a1", "doc-9", models.StatusInProgress); err == nil {
		t.Error("wrong doctor should be rejected")
	}

	appt, err := svc.UpdateStatus(ctx, "a1", "doc-1", models.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if appt.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", appt.Status)
	}

	// Terminal states are frozen.
	if _, err := svc.UpdateStatus(ctx, "a1", "doc-1", models.StatusInProgress); err == nil {
		t.Error("terminal appointment should reject further transitions")
	}
}
