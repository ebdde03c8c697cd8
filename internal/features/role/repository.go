package role

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

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type RoleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRoleRepository(mongodb *database.MongodbDB) RoleRepository {
	return &RoleRepositoryImpl{
		Collection: mongodb.DB.Collection("roles"),
	}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *Role) error {
	_, err := r.Collection.InsertOne(ctx, role)
	return err
}

func (r *RoleRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Role, error) {
	var role Role
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("role %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) FindByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.Collection.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("role %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) List(ctx context.Context) ([]Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var roles []Role
	if err = cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, role *Role) error {
	update := bson.M{
		"$set": bson.M{
			"name":        role.Name,
			"description": role.Description,
			"permissions": role.Permissions,
			"updated_at":  role.UpdatedAt,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": role.ID}, update)
	return err
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
