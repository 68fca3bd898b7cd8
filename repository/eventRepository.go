package repository

import (
	"context"
	"time"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultPageSize = 10

type EventRepository struct {
	mongoClient *mongo.Client
	dbName      string
}

func NewEventRepository(mongoClient *mongo.Client, dbName string) *EventRepository {
	return &EventRepository{
		mongoClient: mongoClient,
		dbName:      dbName,
	}
}

func (r *EventRepository) collection() *mongo.Collection {
	return r.mongoClient.Database(r.dbName).Collection("events")
}

func (r *EventRepository) FindOneByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
	events, err := r.find(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, entity.ErrNotFound
	}

	return events[0], nil
}

func (r *EventRepository) FindManyUpcomingFeatured(ctx context.Context, limit int) ([]*entity.Event, error) {
	return r.find(ctx,
		bson.M{
			"date":   bson.M{"$gte": time.Now()},
			"status": entity.EventStatusActive,
		},
		bson.M{
			"$sort": bson.M{"date": 1},
		},
		bson.M{
			"$limit": limit,
		},
	)
}

func (r *EventRepository) FindManyByOrganizerID(ctx context.Context, organizerID primitive.ObjectID) ([]*entity.Event, error) {
	return r.find(ctx,
		bson.M{"organizer": organizerID},
		bson.M{"$sort": bson.M{"date": 1}},
	)
}

func (r *EventRepository) FindManyByParticipantID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Event, error) {
	return r.find(ctx,
		bson.M{"participants": userID},
		bson.M{"$sort": bson.M{"date": 1}},
	)
}

func (r *EventRepository) FindManyUpcoming(ctx context.Context) ([]*entity.Event, error) {
	return r.find(ctx,
		bson.M{
			"date":   bson.M{"$gte": time.Now()},
			"status": entity.EventStatusActive,
		},
		bson.M{"$sort": bson.M{"date": 1}},
	)
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*entity.Event, error) {
	return r.find(ctx,
		bson.M{},
		bson.M{"$sort": bson.M{"createdAt": -1}},
	)
}

func (r *EventRepository) FindManyRecent(ctx context.Context, limit int) ([]*entity.Event, error) {
	return r.find(ctx,
		bson.M{},
		bson.M{"$sort": bson.M{"createdAt": -1}},
		bson.M{"$limit": limit},
	)
}

// FindManyFiltered returns one page of events plus the unpaged total.
func (r *EventRepository) FindManyFiltered(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, int64, error) {
	match := bson.M{}

	if filter.SkillLevel != "" {
		match["skillLevel"] = filter.SkillLevel
	}
	if filter.Search != "" {
		rx := primitive.Regex{Pattern: filter.Search, Options: "i"}
		match["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"description": rx},
			bson.M{"location": rx},
		}
	}
	if filter.Date != nil {
		day := filter.Date.Truncate(24 * time.Hour)
		match["date"] = bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
	} else {
		// Future events only unless an explicit date was requested.
		match["date"] = bson.M{"$gte": time.Now()}
	}

	total, err := r.collection().CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageSize
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "date"
	}
	order := 1
	if filter.SortOrder == "desc" {
		order = -1
	}

	events, err := r.find(ctx,
		match,
		bson.M{"$sort": bson.M{sortBy: order}},
		bson.M{"$skip": (page - 1) * limit},
		bson.M{"$limit": limit},
	)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// find runs the hydration pipeline: match (+ extra stages), then $lookup of
// organizer, participants and taxonomy references. Participant order follows
// the participants array, not collection order.
func (r *EventRepository) find(ctx context.Context, match bson.M, extraStages ...bson.M) ([]*entity.Event, error) {
	pipeline := bson.A{
		bson.M{"$match": match},
	}
	for _, stage := range extraStages {
		pipeline = append(pipeline, stage)
	}

	pipeline = append(pipeline,
		bson.M{
			"$lookup": bson.M{
				"from":         "users",
				"localField":   "organizer",
				"foreignField": "_id",
				"as":           "organizerDoc",
			},
		},
		bson.M{
			"$unwind": bson.M{
				"path":                       "$organizerDoc",
				"preserveNullAndEmptyArrays": true,
			},
		},
		bson.M{
			"$lookup": bson.M{
				"from":         "users",
				"localField":   "participants",
				"foreignField": "_id",
				"as":           "participantDocs",
			},
		},
		bson.M{
			"$addFields": bson.M{
				"participantDocs": bson.M{
					"$map": bson.M{
						"input": "$participants",
						"as":    "pid",
						"in": bson.M{
							"$arrayElemAt": bson.A{
								"$participantDocs",
								bson.M{"$indexOfArray": bson.A{"$participantDocs._id", "$$pid"}},
							},
						},
					},
				},
			},
		},
		bson.M{
			"$lookup": bson.M{
				"from":         "categories",
				"localField":   "sportCategory",
				"foreignField": "_id",
				"as":           "sportCategoryDoc",
			},
		},
		bson.M{
			"$unwind": bson.M{
				"path":                       "$sportCategoryDoc",
				"preserveNullAndEmptyArrays": true,
			},
		},
		bson.M{
			"$lookup": bson.M{
				"from":         "cities",
				"localField":   "city",
				"foreignField": "_id",
				"as":           "cityDoc",
			},
		},
		bson.M{
			"$unwind": bson.M{
				"path":                       "$cityDoc",
				"preserveNullAndEmptyArrays": true,
			},
		},
		bson.M{
			"$lookup": bson.M{
				"from":         "areas",
				"localField":   "area",
				"foreignField": "_id",
				"as":           "areaDoc",
			},
		},
		bson.M{
			"$unwind": bson.M{
				"path":                       "$areaDoc",
				"preserveNullAndEmptyArrays": true,
			},
		},
		bson.M{
			"$project": bson.M{
				"organizerDoc.password":    0,
				"participantDocs.password": 0,
			},
		},
	)

	cur, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var events []*entity.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) InsertOne(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	res, err := r.collection().InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}

	return r.FindOneByID(ctx, res.InsertedID.(primitive.ObjectID))
}

// UpdateOne applies a field-level patch and returns the rehydrated document.
func (r *EventRepository) UpdateOne(ctx context.Context, id primitive.ObjectID, patch bson.M) (*entity.Event, error) {
	patch["updatedAt"] = time.Now()

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, entity.ErrNotFound
	}

	return r.FindOneByID(ctx, id)
}

func (r *EventRepository) DeleteOneByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// AddParticipant appends userID to the participant set as a single
// conditional update: the document must exist, must not already list the
// user, and must have room. Capacity checking and the append are one store
// round trip, so two racing joins for the last slot cannot both match.
// Returns false when no document matched; the caller classifies why.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":          eventID,
		"participants": bson.M{"$ne": userID},
		"$expr": bson.M{
			"$or": bson.A{
				bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$maxParticipants", nil}}, nil}},
				bson.M{"$lt": bson.A{bson.M{"$size": "$participants"}, "$maxParticipants"}},
			},
		},
	}
	update := bson.M{
		"$addToSet": bson.M{"participants": userID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return res.MatchedCount == 1, nil
}

// RemoveParticipant pulls userID from the participant set unless they are
// the organizer. Returns false when no document matched.
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":          eventID,
		"participants": userID,
		"organizer":    bson.M{"$ne": userID},
	}
	update := bson.M{
		"$pull": bson.M{"participants": userID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return res.MatchedCount == 1, nil
}

func (r *EventRepository) DeleteManyByOrganizerID(ctx context.Context, organizerID primitive.ObjectID) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{"organizer": organizerID})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (r *EventRepository) PullParticipantFromAll(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection().UpdateMany(ctx,
		bson.M{"participants": userID},
		bson.M{"$pull": bson.M{"participants": userID}},
	)
	return err
}

func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}

func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"date": bson.M{"$gte": time.Now()}})
}

// CountParticipations sums participant-set sizes across all events.
func (r *EventRepository) CountParticipations(ctx context.Context) (int64, error) {
	cur, err := r.collection().Aggregate(ctx, bson.A{
		bson.M{
			"$group": bson.M{
				"_id":   nil,
				"total": bson.M{"$sum": bson.M{"$size": "$participants"}},
			},
		},
	})
	if err != nil {
		return 0, err
	}

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}
