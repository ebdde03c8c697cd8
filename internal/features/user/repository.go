package user

import (
	"context"
	"errors"
	"strings"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]User, int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error)
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("users"),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *User) error {
	_, err := r.Collection.InsertOne(ctx, user)
	return err
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user %q not found", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]User, int64, error) {
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

	var users []User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *User) error {
	update := bson.M{
		"$set": bson.M{
			"email":      user.Email,
			"full_name":  user.FullName,
			"phone":      user.Phone,
			"role_id":    user.RoleID,
			"active":     user.Active,
			"updated_at": user.UpdatedAt,
		},
	}

	if user.LastLogin != nil {
		update["$set"].(bson.M)["last_login"] = user.LastLogin
	}
	if user.Password != "" {
		update["$set"].(bson.M)["password"] = user.Password
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	return err
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *UserRepositoryImpl) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"role_id": roleID})
}
