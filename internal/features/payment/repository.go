package payment

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

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Payment, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Payment, int64, error)
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PaymentRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPaymentRepository(mongodb *database.MongodbDB) PaymentRepository {
	return &PaymentRepositoryImpl{
		Collection: mongodb.DB.Collection("payments"),
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *Payment) error {
	_, err := r.Collection.InsertOne(ctx, payment)
	return err
}

func (r *PaymentRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Payment, error) {
	var payment Payment
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("payment %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Payment, int64, error) {
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

	var payments []Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *Payment) error {
	set := bson.M{
		"total_hours": payment.TotalHours,
		"hourly_rate": payment.HourlyRate,
		"amount":      payment.Amount,
		"status":      payment.Status,
		"notes":       payment.Notes,
		"updated_at":  payment.UpdatedAt,
	}
	unset := bson.M{}
	if payment.PaidAt != nil {
		set["paid_at"] = payment.PaidAt
	} else {
		// A reopened payment loses its payment date.
		unset["paid_at"] = ""
	}
	if payment.ConfirmedAt != nil {
		set["confirmation_date"] = payment.ConfirmedAt
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": payment.ID}, update)
	return err
}

func (r *PaymentRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
