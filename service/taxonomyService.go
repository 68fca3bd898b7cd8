package service

import (
	"context"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaxonomyService is the thin read/write surface over one reference-data
// collection. Input shaping happens at the transport layer; there are no
// rules here beyond existence.
type TaxonomyService[T any] struct {
	store TaxonomyStore[T]
}

func NewTaxonomyService[T any](store TaxonomyStore[T]) *TaxonomyService[T] {
	return &TaxonomyService[T]{store: store}
}

func (s *TaxonomyService[T]) List(ctx context.Context) ([]*T, error) {
	return s.store.FindAll(ctx)
}

func (s *TaxonomyService[T]) Get(ctx context.Context, hexID string) (*T, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, entity.ErrNotFound
	}

	return s.store.FindOneByID(ctx, id)
}

func (s *TaxonomyService[T]) Create(ctx context.Context, doc *T) (*T, error) {
	return s.store.InsertOne(ctx, doc)
}

func (s *TaxonomyService[T]) Update(ctx context.Context, hexID string, patch bson.M) (*T, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, entity.ErrNotFound
	}

	return s.store.UpdateOne(ctx, id, patch)
}

func (s *TaxonomyService[T]) Delete(ctx context.Context, hexID string) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return entity.ErrNotFound
	}

	return s.store.DeleteOneByID(ctx, id)
}
