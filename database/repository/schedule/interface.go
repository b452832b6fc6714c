package scheduleRepo

import (
	"context"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository is the document-store boundary for doctor leave
// schedules. Reads return an empty schedule for doctors who never saved one;
// writes are full overwrites.
type ScheduleRepository interface {
	GetDoctorSchedule(ctx context.Context, doctorID string) (*models.DoctorSchedule, error)
	SetDoctorSchedule(ctx context.Context, sched *models.DoctorSchedule) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("medibook")
	return &mongoScheduleRepo{
		coll: db.Collection("schedules"),
	}
}
