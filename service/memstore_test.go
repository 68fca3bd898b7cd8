package service

import (
	"context"
	"sync"
	"time"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mutex-guarded in-memory stores backing the service tests. They implement
// the same guarded-update semantics the Mongo repositories get from
// conditional filters, so the concurrency tests exercise the real
// check-and-set contract.

type memUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*entity.User)}
}

func (s *memUserStore) InsertOne(_ context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, entity.ErrEmailTaken
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = cloneUser(user)

	return cloneUser(user), nil
}

func (s *memUserStore) FindOneByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}

	return cloneUser(user), nil
}

func (s *memUserStore) FindOneByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, entity.ErrNotFound
}

func (s *memUserStore) FindAll(_ context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}

	return users, nil
}

func (s *memUserStore) FindManyRecent(ctx context.Context, limit int64) ([]*entity.User, error) {
	users, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if int64(len(users)) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (s *memUserStore) UpdateOne(_ context.Context, id primitive.ObjectID, patch bson.M) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}

	for key, value := range patch {
		switch key {
		case "name":
			user.Name = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "location":
			user.Location = value.(string)
		case "avatar":
			user.Avatar = value.(string)
		case "role":
			user.Role = value.(string)
		case "favoriteCategories":
			user.FavoriteCategories = value.([]primitive.ObjectID)
		}
	}
	user.UpdatedAt = time.Now()

	return cloneUser(user), nil
}

func (s *memUserStore) DeleteOneByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.users, id)

	return nil
}

func (s *memUserStore) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.users)), nil
}

type memEventStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*entity.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{events: make(map[primitive.ObjectID]*entity.Event)}
}

func (s *memEventStore) FindOneByID(_ context.Context, id primitive.ObjectID) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, entity.ErrNotFound
	}

	return cloneEvent(event), nil
}

func (s *memEventStore) FindAll(_ context.Context) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]*entity.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, cloneEvent(event))
	}

	return events, nil
}

func (s *memEventStore) FindManyUpcomingFeatured(ctx context.Context, limit int) ([]*entity.Event, error) {
	events, err := s.FindManyUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (s *memEventStore) FindManyUpcoming(_ context.Context) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []*entity.Event
	for _, event := range s.events {
		if event.Status == entity.EventStatusActive && !event.Date.Before(time.Now().Truncate(24*time.Hour)) {
			events = append(events, cloneEvent(event))
		}
	}

	return events, nil
}

func (s *memEventStore) FindManyRecent(ctx context.Context, limit int) ([]*entity.Event, error) {
	events, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (s *memEventStore) FindManyByOrganizerID(_ context.Context, organizerID primitive.ObjectID) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []*entity.Event
	for _, event := range s.events {
		if event.OrganizerID == organizerID {
			events = append(events, cloneEvent(event))
		}
	}

	return events, nil
}

func (s *memEventStore) FindManyByParticipantID(_ context.Context, userID primitive.ObjectID) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []*entity.Event
	for _, event := range s.events {
		if event.HasParticipant(userID) {
			events = append(events, cloneEvent(event))
		}
	}

	return events, nil
}

func (s *memEventStore) FindManyFiltered(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, int64, error) {
	events, err := s.FindManyUpcoming(ctx)
	if err != nil {
		return nil, 0, err
	}

	return events, int64(len(events)), nil
}

func (s *memEventStore) InsertOne(_ context.Context, event *entity.Event) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	s.events[event.ID] = cloneEvent(event)

	return cloneEvent(event), nil
}

func (s *memEventStore) UpdateOne(_ context.Context, id primitive.ObjectID, patch bson.M) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, entity.ErrNotFound
	}

	for key, value := range patch {
		switch key {
		case "title":
			event.Title = value.(string)
		case "description":
			event.Description = value.(string)
		case "sportCategory":
			event.SportCategoryID = value.(primitive.ObjectID)
		case "city":
			event.CityID = value.(primitive.ObjectID)
		case "area":
			event.AreaID = value.(primitive.ObjectID)
		case "date":
			event.Date = value.(time.Time)
		case "time":
			event.Time = value.(string)
		case "location":
			event.Location = value.(string)
		case "maxParticipants":
			capacity := value.(int)
			event.MaxParticipants = &capacity
		case "skillLevel":
			event.SkillLevel = value.(string)
		case "status":
			event.Status = value.(string)
		case "image":
			event.Image = value.(string)
		case "requirements":
			event.Requirements = value.(string)
		case "contactInfo":
			event.ContactInfo = value.(string)
		}
	}
	event.UpdatedAt = time.Now()

	return cloneEvent(event), nil
}

func (s *memEventStore) DeleteOneByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.events, id)

	return nil
}

// AddParticipant checks membership and capacity and appends under one lock,
// mirroring the single conditional update the Mongo repository issues.
func (s *memEventStore) AddParticipant(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	if event.HasParticipant(userID) || event.IsFull() {
		return false, nil
	}

	event.ParticipantIDs = append(event.ParticipantIDs, userID)
	return true, nil
}

func (s *memEventStore) RemoveParticipant(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	if event.OrganizerID == userID || !event.HasParticipant(userID) {
		return false, nil
	}

	kept := event.ParticipantIDs[:0]
	for _, id := range event.ParticipantIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	event.ParticipantIDs = kept

	return true, nil
}

func (s *memEventStore) DeleteManyByOrganizerID(_ context.Context, organizerID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, event := range s.events {
		if event.OrganizerID == organizerID {
			delete(s.events, id)
			deleted++
		}
	}

	return deleted, nil
}

func (s *memEventStore) PullParticipantFromAll(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		kept := event.ParticipantIDs[:0]
		for _, id := range event.ParticipantIDs {
			if id != userID {
				kept = append(kept, id)
			}
		}
		event.ParticipantIDs = kept
	}

	return nil
}

func (s *memEventStore) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.events)), nil
}

func (s *memEventStore) CountUpcoming(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, event := range s.events {
		if !event.Date.Before(time.Now().Truncate(24 * time.Hour)) {
			count++
		}
	}

	return count, nil
}

func (s *memEventStore) CountParticipations(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, event := range s.events {
		total += int64(len(event.ParticipantIDs))
	}

	return total, nil
}

type memTaxonomyStore[T any] struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*T
}

func newMemTaxonomyStore[T any]() *memTaxonomyStore[T] {
	return &memTaxonomyStore[T]{docs: make(map[primitive.ObjectID]*T)}
}

func (s *memTaxonomyStore[T]) add(doc *T) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := primitive.NewObjectID()
	s.docs[id] = doc

	return id
}

func (s *memTaxonomyStore[T]) FindAll(_ context.Context) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]*T, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *memTaxonomyStore[T]) FindOneByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, entity.ErrNotFound
	}

	return doc, nil
}

func (s *memTaxonomyStore[T]) ExistsByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.docs[id]
	return ok, nil
}

func (s *memTaxonomyStore[T]) InsertOne(_ context.Context, doc *T) (*T, error) {
	s.add(doc)
	return doc, nil
}

func (s *memTaxonomyStore[T]) UpdateOne(_ context.Context, id primitive.ObjectID, _ bson.M) (*T, error) {
	return s.FindOneByID(context.Background(), id)
}

func (s *memTaxonomyStore[T]) DeleteOneByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.docs, id)

	return nil
}

type memContactStore struct {
	mu       sync.Mutex
	contacts []*entity.Contact
}

func newMemContactStore() *memContactStore {
	return &memContactStore{}
}

func (s *memContactStore) InsertOne(_ context.Context, contact *entity.Contact) (*entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()
	s.contacts = append(s.contacts, contact)

	return contact, nil
}

func (s *memContactStore) FindAll(_ context.Context) ([]*entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*entity.Contact(nil), s.contacts...), nil
}

func (s *memContactStore) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.contacts)), nil
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user
	clone.FavoriteCategories = append([]primitive.ObjectID(nil), user.FavoriteCategories...)
	return &clone
}

func cloneEvent(event *entity.Event) *entity.Event {
	clone := *event
	clone.ParticipantIDs = append([]primitive.ObjectID(nil), event.ParticipantIDs...)
	return &clone
}
