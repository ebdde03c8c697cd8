package hours

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

type HoursRepository interface {
	Create(ctx context.Context, record *HourRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*HourRecord, error)
	FindOpenByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*HourRecord, error)
	FindAllOpen(ctx context.Context) ([]HourRecord, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]HourRecord, int64, error)
	Update(ctx context.Context, record *HourRecord) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type HoursRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewHoursRepository(mongodb *database.MongodbDB) HoursRepository {
	return &HoursRepositoryImpl{
		Collection: mongodb.DB.Collection("hours"),
	}
}

func (r *HoursRepositoryImpl) Create(ctx context.Context, record *HourRecord) error {
	_, err := r.Collection.InsertOne(ctx, record)
	return err
}

func (r *HoursRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*HourRecord, error) {
	var record HourRecord
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("hour record %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindOpenByEmployee returns the employee's record without a clock_out, or a
// NotFound error when none is open.
func (r *HoursRepositoryImpl) FindOpenByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*HourRecord, error) {
	var record HourRecord
	filter := bson.M{
		"employee_id": employeeID,
		"clock_out":   bson.M{"$exists": false},
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("no open hour record for employee %s", employeeID.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *HoursRepositoryImpl) FindAllOpen(ctx context.Context) ([]HourRecord, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"clock_out": bson.M{"$exists": false}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []HourRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *HoursRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]HourRecord, int64, error) {
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
	opts.SetSort(bson.D{{Key: "clock_in", Value: -1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []HourRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *HoursRepositoryImpl) Update(ctx context.Context, record *HourRecord) error {
	set := bson.M{
		"clock_in":      record.ClockIn,
		"breaks":        record.Breaks,
		"total_minutes": record.TotalMinutes,
		"status":        record.Status,
		"notes":         record.Notes,
		"review_notes":  record.ReviewNotes,
		"updated_at":    record.UpdatedAt,
	}
	if record.ClockOut != nil {
		set["clock_out"] = record.ClockOut
	}
	if record.ApprovedBy != nil {
		set["approved_by"] = record.ApprovedBy
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": record.ID}, bson.M{"$set": set})
	return err
}

func (r *HoursRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
