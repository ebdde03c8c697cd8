package schedule

import (
	"context"
	"errors"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Schedule, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Schedule, int64, error)
	Update(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ScheduleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewScheduleRepository(mongodb *database.MongodbDB) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		Collection: mongodb.DB.Collection("schedules"),
	}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, schedule *Schedule) error {
	_, err := r.Collection.InsertOne(ctx, schedule)
	return err
}

func (r *ScheduleRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Schedule, error) {
	var schedule Schedule
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("schedule %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Schedule, int64, error) {
	if filter == nil {
		filter = map[string]interface{}{}
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}
	opts.SetSort(bson.D{{Key: "week_start_date", Value: -1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var schedules []Schedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, schedule *Schedule) error {
	update := bson.M{
		"$set": bson.M{
			"store_id":        schedule.StoreID,
			"title":           schedule.Title,
			"week_start_date": schedule.WeekStartDate,
			"week_end_date":   schedule.WeekEndDate,
			"shifts":          schedule.Shifts,
			"updated_at":      schedule.UpdatedAt,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": schedule.ID}, update)
	return err
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
