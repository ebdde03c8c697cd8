package timesheet

import (
	"context"
	"errors"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TimesheetRepository interface {
	Create(ctx context.Context, sheet *Timesheet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Timesheet, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Timesheet, int64, error)
	FindApprovedUnpaid(ctx context.Context, periodStart, periodEnd time.Time) ([]Timesheet, error)
	Update(ctx context.Context, sheet *Timesheet) error
	SetPayment(ctx context.Context, id primitive.ObjectID, paymentID *primitive.ObjectID) error
	ClearPayment(ctx context.Context, paymentID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TimesheetRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTimesheetRepository(mongodb *database.MongodbDB) TimesheetRepository {
	return &TimesheetRepositoryImpl{
		Collection: mongodb.DB.Collection("timesheets"),
	}
}

func (r *TimesheetRepositoryImpl) Create(ctx context.Context, sheet *Timesheet) error {
	_, err := r.Collection.InsertOne(ctx, sheet)
	return err
}

func (r *TimesheetRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Timesheet, error) {
	var sheet Timesheet
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("timesheet %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *TimesheetRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Timesheet, int64, error) {
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
	opts.SetSort(bson.D{{Key: "period_start", Value: -1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var sheets []Timesheet
	if err = cursor.All(ctx, &sheets); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return sheets, total, nil
}

// FindApprovedUnpaid returns approved sheets inside the period that are not
// yet linked to a payment. Used by payment generation.
func (r *TimesheetRepositoryImpl) FindApprovedUnpaid(ctx context.Context, periodStart, periodEnd time.Time) ([]Timesheet, error) {
	filter := bson.M{
		"status":       StatusApproved,
		"payment_id":   bson.M{"$exists": false},
		"period_start": bson.M{"$gte": periodStart},
		"period_end":   bson.M{"$lte": periodEnd},
	}

	opts := options.Find().SetSort(bson.D{{Key: "period_start", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sheets []Timesheet
	if err = cursor.All(ctx, &sheets); err != nil {
		return nil, err
	}
	return sheets, nil
}

func (r *TimesheetRepositoryImpl) Update(ctx context.Context, sheet *Timesheet) error {
	set := bson.M{
		"period_start":   sheet.PeriodStart,
		"period_end":     sheet.PeriodEnd,
		"daily_hours":    sheet.DailyHours,
		"total_hours":    sheet.TotalHours,
		"hourly_rate":    sheet.HourlyRate,
		"total_earnings": sheet.TotalEarnings,
		"status":         sheet.Status,
		"notes":          sheet.Notes,
		"review_notes":   sheet.ReviewNotes,
		"updated_at":     sheet.UpdatedAt,
	}
	if sheet.SubmittedAt != nil {
		set["submitted_at"] = sheet.SubmittedAt
	}
	if sheet.ReviewedBy != nil {
		set["reviewed_by"] = sheet.ReviewedBy
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": sheet.ID}, bson.M{"$set": set})
	return err
}

func (r *TimesheetRepositoryImpl) SetPayment(ctx context.Context, id primitive.ObjectID, paymentID *primitive.ObjectID) error {
	var update bson.M
	if paymentID == nil {
		update = bson.M{"$unset": bson.M{"payment_id": ""}}
	} else {
		update = bson.M{"$set": bson.M{"payment_id": paymentID}}
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// ClearPayment detaches every sheet referencing the payment. Used when a
// payment is deleted.
func (r *TimesheetRepositoryImpl) ClearPayment(ctx context.Context, paymentID primitive.ObjectID) error {
	_, err := r.Collection.UpdateMany(ctx,
		bson.M{"payment_id": paymentID},
		bson.M{"$unset": bson.M{"payment_id": ""}})
	return err
}

func (r *TimesheetRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
