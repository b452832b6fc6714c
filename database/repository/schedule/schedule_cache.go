package scheduleRepo

import (
	"context"
	"encoding/json"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const scheduleCacheTTL = 10 * time.Minute

// cachedScheduleRepo is a read-through cache in front of the document store.
// The store stays the single source of truth: every successful save
// invalidates the cached copy, and cache failures fall through to the store.
type cachedScheduleRepo struct {
	inner ScheduleRepository
	cache *redis.Client
}

// NewCachedScheduleRepo wraps a ScheduleRepository with a Redis read-through cache.
func NewCachedScheduleRepo(inner ScheduleRepository, cache *redis.Client) ScheduleRepository {
	return &cachedScheduleRepo{inner: inner, cache: cache}
}

func scheduleCacheKey(doctorID string) string {
	return "doctor-schedule:" + doctorID
}

func (r *cachedScheduleRepo) GetDoctorSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error) {
	key := scheduleCacheKey(doctorID)
	if data, err := r.cache.Get(ctx, key).Result(); err == nil {
		var sched models.DoctorSchedule
		if err := json.Unmarshal([]byte(data), &sched); err == nil {
			return &sched, nil
		}
		// Corrupt cache entry; drop it and reload from the store.
		r.cache.Del(ctx, key)
	}

	sched, err := r.inner.GetDoctorSchedule(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(sched); err == nil {
		if err := r.cache.Set(ctx, key, data, scheduleCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache doctor schedule",
				zap.String("doctorID", doctorID), zap.Error(err))
		}
	}
	return sched, nil
}

func (r *cachedScheduleRepo) SetDoctorSchedule(ctx context.Context, sched *models.DoctorSchedule) error {
	if err := r.inner.SetDoctorSchedule(ctx, sched); err != nil {
		return err
	}
	if err := r.cache.Del(ctx, scheduleCacheKey(sched.DoctorID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate schedule cache",
			zap.String("doctorID", sched.DoctorID), zap.Error(err))
	}
	return nil
}
