package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type eventFixture struct {
	svc    *EventService
	users  *memUserStore
	events *memEventStore

	categoryID primitive.ObjectID
	cityID     primitive.ObjectID
	areaID     primitive.ObjectID
}

func newEventFixture() *eventFixture {
	users := newMemUserStore()
	events := newMemEventStore()
	categories := newMemTaxonomyStore[entity.Category]()
	cities := newMemTaxonomyStore[entity.City]()
	areas := newMemTaxonomyStore[entity.Area]()

	return &eventFixture{
		svc:        NewEventService(events, users, categories, cities, areas),
		users:      users,
		events:     events,
		categoryID: categories.add(&entity.Category{Name: "Football"}),
		cityID:     cities.add(&entity.City{Name: "Riga"}),
		areaID:     areas.add(&entity.Area{Name: "Centrs"}),
	}
}

func (f *eventFixture) addUser(t *testing.T, name, role string) primitive.ObjectID {
	t.Helper()

	user, err := f.users.InsertOne(context.Background(), &entity.User{
		Name:  name,
		Email: name + "@x.com",
		Role:  role,
	})
	require.NoError(t, err)

	return user.ID
}

func (f *eventFixture) createInput(capacity *int) CreateEventInput {
	return CreateEventInput{
		Title:           "Sunday five-a-side",
		Description:     "Friendly game, all welcome",
		SportCategoryID: f.categoryID.Hex(),
		CityID:          f.cityID.Hex(),
		AreaID:          f.areaID.Hex(),
		Date:            time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:            "18:30",
		Location:        "Central pitch",
		MaxParticipants: capacity,
	}
}

func (f *eventFixture) createEvent(t *testing.T, organizerID primitive.ObjectID, capacity *int) *entity.Event {
	t.Helper()

	event, err := f.svc.Create(context.Background(), organizerID, f.createInput(capacity))
	require.NoError(t, err)

	return event
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestEventService_CreateOrganizerAutoJoins(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	organizer := f.addUser(t, "u1", entity.RoleUser)

	event := f.createEvent(t, organizer, intPtr(2))

	assert.Equal(t, organizer, event.OrganizerID)
	require.Len(t, event.ParticipantIDs, 1)
	assert.Equal(t, organizer, event.ParticipantIDs[0])
	assert.Equal(t, entity.EventStatusActive, event.Status)
	assert.Equal(t, entity.SkillLevelAll, event.SkillLevel)
}

func TestEventService_CreateValidation(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	organizer := f.addUser(t, "u1", entity.RoleUser)
	ctx := context.Background()

	input := f.createInput(nil)
	input.Title = ""
	_, err := f.svc.Create(ctx, organizer, input)
	assert.ErrorIs(t, err, entity.ErrValidation)

	input = f.createInput(intPtr(1))
	_, err = f.svc.Create(ctx, organizer, input)
	assert.ErrorIs(t, err, entity.ErrValidation)

	input = f.createInput(nil)
	input.Time = "25:99"
	_, err = f.svc.Create(ctx, organizer, input)
	assert.ErrorIs(t, err, entity.ErrValidation)

	input = f.createInput(nil)
	input.SportCategoryID = primitive.NewObjectID().Hex()
	_, err = f.svc.Create(ctx, organizer, input)
	assert.ErrorIs(t, err, entity.ErrValidation)

	input = f.createInput(nil)
	input.SkillLevel = "expert"
	_, err = f.svc.Create(ctx, organizer, input)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestEventService_JoinUntilFull(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	u1 := f.addUser(t, "u1", entity.RoleUser)
	u2 := f.addUser(t, "u2", entity.RoleUser)
	u3 := f.addUser(t, "u3", entity.RoleUser)

	event := f.createEvent(t, u1, intPtr(2))
	require.Len(t, event.ParticipantIDs, 1)

	joined, err := f.svc.Join(ctx, u2, event.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, joined.ParticipantIDs, 2)

	_, err = f.svc.Join(ctx, u3, event.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrEventFull)

	current, err := f.svc.Get(ctx, event.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, current.ParticipantIDs, 2)
}

func TestEventService_JoinIsNotIdempotent(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	u1 := f.addUser(t, "u1", entity.RoleUser)
	u2 := f.addUser(t, "u2", entity.RoleUser)

	event := f.createEvent(t, u1, nil)

	_, err := f.svc.Join(ctx, u2, event.ID.Hex())
	require.NoError(t, err)

	_, err = f.svc.Join(ctx, u2, event.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrAlreadyJoined)

	current, err := f.svc.Get(ctx, event.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, current.ParticipantIDs, 2)
}

func TestEventService_JoinMissingEvent(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	u1 := f.addUser(t, "u1", entity.RoleUser)

	_, err := f.svc.Join(context.Background(), u1, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = f.svc.Join(context.Background(), u1, "not-a-hex-id")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

// Many users race for the last open slots; the capacity bound must hold no
// matter how the joins interleave.
func TestEventService_ConcurrentJoinsRespectCapacity(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	organizer := f.addUser(t, "organizer", entity.RoleUser)
	capacity := 5
	event := f.createEvent(t, organizer, intPtr(capacity))

	const workers = 32
	userIDs := make([]primitive.ObjectID, workers)
	for i := range userIDs {
		userIDs[i] = primitive.NewObjectID()
	}

	var wg sync.WaitGroup
	results := make([]error, workers)

	for i, userID := range userIDs {
		wg.Add(1)
		go func(i int, userID primitive.ObjectID) {
			defer wg.Done()
			_, results[i] = f.svc.Join(ctx, userID, event.ID.Hex())
		}(i, userID)
	}
	wg.Wait()

	var joined, full int
	for _, err := range results {
		switch {
		case err == nil:
			joined++
		default:
			require.ErrorIs(t, err, entity.ErrEventFull)
			full++
		}
	}

	assert.Equal(t, capacity-1, joined, "exactly the open slots are won")
	assert.Equal(t, workers-(capacity-1), full)

	current, err := f.svc.Get(ctx, event.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, current.ParticipantIDs, capacity)
	assert.True(t, current.HasParticipant(organizer), "organizer stays a participant")
}

func TestEventService_Leave(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	u1 := f.addUser(t, "u1", entity.RoleUser)
	u2 := f.addUser(t, "u2", entity.RoleUser)

	event := f.createEvent(t, u1, intPtr(2))
	_, err := f.svc.Join(ctx, u2, event.ID.Hex())
	require.NoError(t, err)

	// The organizer can never leave their own event.
	_, err = f.svc.Leave(ctx, u1, event.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrOrganizerCannotLeave)

	current, err := f.svc.Get(ctx, event.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, current.ParticipantIDs, 2)

	left, err := f.svc.Leave(ctx, u2, event.ID.Hex())
	require.NoError(t, err)
	require.Len(t, left.ParticipantIDs, 1)
	assert.Equal(t, u1, left.ParticipantIDs[0])

	_, err = f.svc.Leave(ctx, u2, event.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrNotJoined)
}

func TestEventService_UpdateOrganizerOnly(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	organizer := f.addUser(t, "u1", entity.RoleUser)
	stranger := f.addUser(t, "u2", entity.RoleUser)
	admin := f.addUser(t, "boss", entity.RoleAdmin)

	event := f.createEvent(t, organizer, nil)

	_, err := f.svc.Update(ctx, stranger, event.ID.Hex(), UpdateEventInput{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	// Admins moderate by deletion; they get no edit override.
	_, err = f.svc.Update(ctx, admin, event.ID.Hex(), UpdateEventInput{Title: strPtr("Admin edit")})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	updated, err := f.svc.Update(ctx, organizer, event.ID.Hex(), UpdateEventInput{
		Title:  strPtr("Moved to Saturday"),
		Status: strPtr(entity.EventStatusCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, "Moved to Saturday", updated.Title)
	assert.Equal(t, entity.EventStatusCancelled, updated.Status)
}

func TestEventService_UpdateValidation(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	organizer := f.addUser(t, "u1", entity.RoleUser)
	event := f.createEvent(t, organizer, nil)

	_, err := f.svc.Update(ctx, organizer, event.ID.Hex(), UpdateEventInput{MaxParticipants: intPtr(1)})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = f.svc.Update(ctx, organizer, event.ID.Hex(), UpdateEventInput{Status: strPtr("archived")})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = f.svc.Update(ctx, organizer, primitive.NewObjectID().Hex(), UpdateEventInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestEventService_Delete(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	organizer := f.addUser(t, "u1", entity.RoleUser)
	stranger := f.addUser(t, "u2", entity.RoleUser)
	admin := f.addUser(t, "boss", entity.RoleAdmin)

	event := f.createEvent(t, organizer, nil)

	err := f.svc.Delete(ctx, stranger, event.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrForbidden)

	require.NoError(t, f.svc.Delete(ctx, organizer, event.ID.Hex()))
	_, err = f.svc.Get(ctx, event.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrNotFound)

	event = f.createEvent(t, organizer, nil)
	require.NoError(t, f.svc.Delete(ctx, admin, event.ID.Hex()))

	err = f.svc.Delete(ctx, organizer, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestEventService_Search(t *testing.T) {
	t.Parallel()

	f := newEventFixture()
	ctx := context.Background()

	organizer := f.addUser(t, "u1", entity.RoleUser)

	input := f.createInput(nil)
	input.Title = "Evening football league"
	_, err := f.svc.Create(ctx, organizer, input)
	require.NoError(t, err)

	input = f.createInput(nil)
	input.Title = "Morning yoga"
	_, err = f.svc.Create(ctx, organizer, input)
	require.NoError(t, err)

	results, err := f.svc.Search(ctx, "futball")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Evening football league", results[0].Title)

	_, err = f.svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, entity.ErrValidation)
}
