package inventory

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

type InventoryRepository interface {
	Create(ctx context.Context, request *InventoryRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*InventoryRequest, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]InventoryRequest, int64, error)
	Update(ctx context.Context, request *InventoryRequest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type InventoryRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewInventoryRepository(mongodb *database.MongodbDB) InventoryRepository {
	return &InventoryRepositoryImpl{
		Collection: mongodb.DB.Collection("inventory_requests"),
	}
}

func (r *InventoryRepositoryImpl) Create(ctx context.Context, request *InventoryRequest) error {
	_, err := r.Collection.InsertOne(ctx, request)
	return err
}

func (r *InventoryRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*InventoryRequest, error) {
	var request InventoryRequest
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("inventory request %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *InventoryRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]InventoryRequest, int64, error) {
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

	var requests []InventoryRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *InventoryRepositoryImpl) Update(ctx context.Context, request *InventoryRequest) error {
	set := bson.M{
		"items":      request.Items,
		"status":     request.Status,
		"notes":      request.Notes,
		"updated_at": request.UpdatedAt,
	}
	if request.ResolvedBy != nil {
		set["resolved_by"] = request.ResolvedBy
	}
	if request.ResolvedAt != nil {
		set["resolved_at"] = request.ResolvedAt
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": request.ID}, bson.M{"$set": set})
	return err
}

func (r *InventoryRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
