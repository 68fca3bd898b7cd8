package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	mongoClient *mongo.Client
	dbName      string
}

func NewUserRepository(mongoClient *mongo.Client, dbName string) *UserRepository {
	return &UserRepository{
		mongoClient: mongoClient,
		dbName:      dbName,
	}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.mongoClient.Database(r.dbName).Collection("users")
}

// EnsureIndexes creates the unique email index. Duplicate registrations race
// against this index, not against a pre-read.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) InsertOne(ctx context.Context, user *entity.User) (*entity.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.collection().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, entity.ErrEmailTaken
		}
		return nil, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *UserRepository) FindOneByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindOneByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := r.collection().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	return r.findMany(ctx, options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (r *UserRepository) FindManyRecent(ctx context.Context, limit int64) ([]*entity.User, error) {
	return r.findMany(ctx, options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
}

func (r *UserRepository) findMany(ctx context.Context, opts *options.FindOptions) ([]*entity.User, error) {
	cur, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var users []*entity.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateOne applies a field-level patch and returns the updated document.
func (r *UserRepository) UpdateOne(ctx context.Context, id primitive.ObjectID, patch bson.M) (*entity.User, error) {
	patch["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Err()
	}

	var user entity.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) DeleteOneByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}
