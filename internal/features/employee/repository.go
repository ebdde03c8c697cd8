package employee

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

type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*Employee, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Employee, int64, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EmployeeRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewEmployeeRepository(mongodb *database.MongodbDB) EmployeeRepository {
	return &EmployeeRepositoryImpl{
		Collection: mongodb.DB.Collection("employees"),
	}
}

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *Employee) error {
	_, err := r.Collection.InsertOne(ctx, employee)
	return err
}

func (r *EmployeeRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error) {
	var employee Employee
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("employee %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepositoryImpl) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*Employee, error) {
	var employee Employee
	err := r.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("no employee linked to user %s", userID.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Employee, int64, error) {
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
	opts.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var employees []Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, employee *Employee) error {
	update := bson.M{
		"$set": bson.M{
			"user_id":                 employee.UserID,
			"position":                employee.Position,
			"hourly_rate":             employee.HourlyRate,
			"employment_status":       employee.EmploymentStatus,
			"store_id":                employee.StoreID,
			"hire_date":               employee.HireDate,
			"emergency_contact_name":  employee.EmergencyContactName,
			"emergency_contact_phone": employee.EmergencyContactPhone,
			"updated_at":              employee.UpdatedAt,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": employee.ID}, update)
	return err
}

func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
