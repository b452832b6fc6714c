package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"
	"medibook/services/availability"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// sessionTTL bounds the lifetime of an abandoned edit session.
const sessionTTL = 30 * time.Minute

// Edit action types accepted by ApplyAction.
const (
	ActionToggleFullDay  = "toggleFullDay"
	ActionToggleSlot     = "toggleSlot"
	ActionBlockMorning   = "blockMorning"
	ActionBlockAfternoon = "blockAfternoon"
	ActionClear          = "clear"
	ActionUndo           = "undo"
)

// Action is one slot-manager edit applied to a parked session.
type Action struct {
	Type   string `json:"type" binding:"required"`
	Date   string `json:"date"`
	Minute int    `json:"minute"`
}

// ManagerService is the doctor-facing slot manager: it loads and saves leave
// schedules and hosts short-lived edit sessions with a one-level undo buffer.
type ManagerService interface {
	GetSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error)
	SaveSchedule(ctx context.Context, doctorID string, sched *models.DoctorSchedule) error
	OpenSession(ctx context.Context, doctorID string) (string, *availability.CalendarState, error)
	ApplyAction(ctx context.Context, doctorID, sessionID string, action Action) (*availability.CalendarState, error)
	SaveSession(ctx context.Context, doctorID, sessionID string) (*models.DoctorSchedule, error)
	DiscardSession(ctx context.Context, doctorID, sessionID string) error
}

// DefaultManagerService is the production implementation.
type DefaultManagerService struct {
	Repo  scheduleRepo.ScheduleRepository
	Cache *redis.Client
}

func (s *DefaultManagerService) GetSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error) {
	sched, err := s.Repo.GetDoctorSchedule(ctx, doctorID)
	if err != nil {
		return nil, availability.NewDataUnavailable(err)
	}
	return sched, nil
}

// SaveSchedule validates and persists a full schedule overwrite.
func (s *DefaultManagerService) SaveSchedule(ctx context.Context, doctorID string, sched *models.DoctorSchedule) error {
	sched.DoctorID = doctorID
	cal, err := availability.CalendarFromSchedule(sched)
	if err != nil {
		return err
	}
	if err := s.Repo.SetDoctorSchedule(ctx, cal.Snapshot()); err != nil {
		return availability.NewDataUnavailable(err)
	}
	return nil
}

// OpenSession loads the doctor's saved schedule into a fresh edit session.
func (s *DefaultManagerService) OpenSession(ctx context.Context, doctorID string) (string, *availability.CalendarState, error) {
	sched, err := s.Repo.GetDoctorSchedule(ctx, doctorID)
	if err != nil {
		return "", nil, availability.NewDataUnavailable(err)
	}
	cal, err := availability.CalendarFromSchedule(sched)
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.New().String()
	state := cal.State()
	if err := s.putSession(ctx, doctorID, sessionID, state); err != nil {
		return "", nil, err
	}
	return sessionID, &state, nil
}

// ApplyAction applies one edit to a parked session. The session's undo buffer
// survives between requests; every mutation overwrites it.
func (s *DefaultManagerService) ApplyAction(ctx context.Context, doctorID, sessionID string, action Action) (*availability.CalendarState, error) {
	cal, err := s.getSession(ctx, doctorID, sessionID)
	if err != nil {
		return nil, err
	}

	switch action.Type {
	case ActionToggleFullDay:
		if err := validDate(action.Date); err != nil {
			return nil, err
		}
		cal.ToggleFullDay(action.Date)
	case ActionToggleSlot:
		if err := validDate(action.Date); err != nil {
			return nil, err
		}
		if _, ok := availability.SlotAt(action.Minute); !ok {
			return nil, availability.NewSlotUnavailable("minute does not match a template slot")
		}
		cal.ToggleSlot(action.Date, action.Minute)
	case ActionBlockMorning:
		if err := validDate(action.Date); err != nil {
			return nil, err
		}
		cal.BlockRange(action.Date, minutesOf(availability.MorningSlots()))
	case ActionBlockAfternoon:
		if err := validDate(action.Date); err != nil {
			return nil, err
		}
		cal.BlockRange(action.Date, minutesOf(availability.AfternoonSlots()))
	case ActionClear:
		if err := validDate(action.Date); err != nil {
			return nil, err
		}
		cal.Clear(action.Date)
	case ActionUndo:
		cal.Undo()
	default:
		return nil, fmt.Errorf("unknown schedule action %q", action.Type)
	}

	state := cal.State()
	if err := s.putSession(ctx, doctorID, sessionID, state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveSession persists the session's working schedule as a full overwrite.
// On failure the session is left intact so the doctor can retry without
// re-entering edits.
func (s *DefaultManagerService) SaveSession(ctx context.Context, doctorID, sessionID string) (*models.DoctorSchedule, error) {
	cal, err := s.getSession(ctx, doctorID, sessionID)
	if err != nil {
		return nil, err
	}
	sched := cal.Snapshot()
	sched.DoctorID = doctorID
	if err := s.Repo.SetDoctorSchedule(ctx, sched); err != nil {
		return nil, availability.NewDataUnavailable(err)
	}
	s.Cache.Del(ctx, sessionKey(doctorID, sessionID))
	return sched, nil
}

func (s *DefaultManagerService) DiscardSession(ctx context.Context, doctorID, sessionID string) error {
	return s.Cache.Del(ctx, sessionKey(doctorID, sessionID)).Err()
}

func (s *DefaultManagerService) getSession(ctx context.Context, doctorID, sessionID string) (*availability.Calendar, error) {
	data, err := s.Cache.Get(ctx, sessionKey(doctorID, sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("schedule edit session not found or expired")
	}
	var state availability.CalendarState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to parse schedule edit session: %w", err)
	}
	state.Schedule.DoctorID = doctorID
	return availability.CalendarFromState(state)
}

func (s *DefaultManagerService) putSession(ctx context.Context, doctorID, sessionID string, state availability.CalendarState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule edit session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(doctorID, sessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache schedule edit session: %w", err)
	}
	return nil
}

func sessionKey(doctorID, sessionID string) string {
	return "schedule-session:" + doctorID + ":" + sessionID
}

func validDate(date string) error {
	if _, err := time.Parse(availability.DateLayout, date); err != nil {
		return fmt.Errorf("malformed date %q: %w", date, err)
	}
	return nil
}

func minutesOf(slots []models.TimeSlot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = s.Minute
	}
	return out
}
