package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduleRepo) GetDoctorSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sched models.DoctorSchedule
	err := r.coll.FindOne(ctx, bson.M{"doctor_id": doctorID}).Decode(&sched)
	if err == mongo.ErrNoDocuments {
		// No saved schedule means no leaves, not a failure.
		return &models.DoctorSchedule{DoctorID: doctorID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching schedule for doctor %s: %w", doctorID, err)
	}
	return &sched, nil
}

func (r *mongoScheduleRepo) SetDoctorSchedule(ctx context.Context, sched *models.DoctorSchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sched.UpdatedAt = time.Now()
	filter := bson.M{"doctor_id": sched.DoctorID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, sched, opts); err != nil {
		return fmt.Errorf("error saving schedule for doctor %s: %w", sched.DoctorID, err)
	}
	return nil
}
