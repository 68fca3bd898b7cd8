package repository

import (
	"context"
	"time"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactRepository stores contact-form submissions.
type ContactRepository struct {
	mongoClient *mongo.Client
	dbName      string
}

func NewContactRepository(mongoClient *mongo.Client, dbName string) *ContactRepository {
	return &ContactRepository{
		mongoClient: mongoClient,
		dbName:      dbName,
	}
}

func (r *ContactRepository) collection() *mongo.Collection {
	return r.mongoClient.Database(r.dbName).Collection("contacts")
}

func (r *ContactRepository) InsertOne(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	contact.CreatedAt = time.Now()

	res, err := r.collection().InsertOne(ctx, contact)
	if err != nil {
		return nil, err
	}

	contact.ID = res.InsertedID.(primitive.ObjectID)
	return contact, nil
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]*entity.Contact, error) {
	cur, err := r.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}

	var contacts []*entity.Contact
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, err
	}

	return contacts, nil
}

func (r *ContactRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}
