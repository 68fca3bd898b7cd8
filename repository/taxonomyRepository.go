package repository

import (
	"context"
	"errors"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaxonomyRepository serves one of the reference-data collections
// (categories, cities, areas). The three collections share a shape, so one
// repository is instantiated per collection name instead of three copies.
type TaxonomyRepository[T any] struct {
	mongoClient    *mongo.Client
	dbName         string
	collectionName string
}

func NewTaxonomyRepository[T any](mongoClient *mongo.Client, dbName, collectionName string) *TaxonomyRepository[T] {
	return &TaxonomyRepository[T]{
		mongoClient:    mongoClient,
		dbName:         dbName,
		collectionName: collectionName,
	}
}

func (r *TaxonomyRepository[T]) collection() *mongo.Collection {
	return r.mongoClient.Database(r.dbName).Collection(r.collectionName)
}

func (r *TaxonomyRepository[T]) FindAll(ctx context.Context) ([]*T, error) {
	cur, err := r.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}

	var docs []*T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *TaxonomyRepository[T]) FindOneByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return &doc, nil
}

func (r *TaxonomyRepository[T]) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *TaxonomyRepository[T]) InsertOne(ctx context.Context, doc *T) (*T, error) {
	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	return r.FindOneByID(ctx, res.InsertedID.(primitive.ObjectID))
}

func (r *TaxonomyRepository[T]) UpdateOne(ctx context.Context, id primitive.ObjectID, patch bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Err()
	}

	var doc T
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *TaxonomyRepository[T]) DeleteOneByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}

	return nil
}
