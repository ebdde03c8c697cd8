package store

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

type StoreRepository interface {
	Create(ctx context.Context, store *Store) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Store, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Store, int64, error)
	Update(ctx context.Context, store *Store) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type StoreRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewStoreRepository(mongodb *database.MongodbDB) StoreRepository {
	return &StoreRepositoryImpl{
		Collection: mongodb.DB.Collection("stores"),
	}
}

func (r *StoreRepositoryImpl) Create(ctx context.Context, store *Store) error {
	_, err := r.Collection.InsertOne(ctx, store)
	return err
}

func (r *StoreRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Store, error) {
	var store Store
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("store %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Store, int64, error) {
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
	opts.SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var stores []Store
	if err = cursor.All(ctx, &stores); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

func (r *StoreRepositoryImpl) Update(ctx context.Context, store *Store) error {
	update := bson.M{
		"$set": bson.M{
			"name":       store.Name,
			"address":    store.Address,
			"city":       store.City,
			"state":      store.State,
			"zip":        store.Zip,
			"phone":      store.Phone,
			"manager_id": store.ManagerID,
			"active":     store.Active,
			"updated_at": store.UpdatedAt,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": store.ID}, update)
	return err
}

func (r *StoreRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
