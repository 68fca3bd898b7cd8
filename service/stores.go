package service

import (
	"context"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces consumed by the services. The repository package
// satisfies them against Mongo; tests satisfy them in memory.

type UserStore interface {
	InsertOne(ctx context.Context, user *entity.User) (*entity.User, error)
	FindOneByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindOneByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindManyRecent(ctx context.Context, limit int64) ([]*entity.User, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, patch bson.M) (*entity.User, error)
	DeleteOneByID(ctx context.Context, id primitive.ObjectID) error
	CountAll(ctx context.Context) (int64, error)
}

type EventStore interface {
	FindOneByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error)
	FindAll(ctx context.Context) ([]*entity.Event, error)
	FindManyUpcomingFeatured(ctx context.Context, limit int) ([]*entity.Event, error)
	FindManyUpcoming(ctx context.Context) ([]*entity.Event, error)
	FindManyRecent(ctx context.Context, limit int) ([]*entity.Event, error)
	FindManyByOrganizerID(ctx context.Context, organizerID primitive.ObjectID) ([]*entity.Event, error)
	FindManyByParticipantID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Event, error)
	FindManyFiltered(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, int64, error)
	InsertOne(ctx context.Context, event *entity.Event) (*entity.Event, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, patch bson.M) (*entity.Event, error)
	DeleteOneByID(ctx context.Context, id primitive.ObjectID) error

	// AddParticipant must be atomic: membership and capacity are checked
	// and the append applied in a single store operation. A false return
	// means no document matched the guard.
	AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error)
	RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error)

	DeleteManyByOrganizerID(ctx context.Context, organizerID primitive.ObjectID) (int64, error)
	PullParticipantFromAll(ctx context.Context, userID primitive.ObjectID) error

	CountAll(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
	CountParticipations(ctx context.Context) (int64, error)
}

type TaxonomyStore[T any] interface {
	FindAll(ctx context.Context) ([]*T, error)
	FindOneByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	InsertOne(ctx context.Context, doc *T) (*T, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, patch bson.M) (*T, error)
	DeleteOneByID(ctx context.Context, id primitive.ObjectID) error
}

type ContactStore interface {
	InsertOne(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
	FindAll(ctx context.Context) ([]*entity.Contact, error)
	CountAll(ctx context.Context) (int64, error)
}
