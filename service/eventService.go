package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hbollon/go-edlib"
	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxTitleLength         = 100
	maxDescriptionLength   = 1000
	maxEventLocationLength = 200
	maxRequirementsLength  = 500
	maxContactInfoLength   = 200

	featuredEventsLimit = 6

	dateOnlyLayout = "2006-01-02"
	clockLayout    = "15:04"

	searchSimilarityThreshold = 0.4
)

type EventService struct {
	eventStore    EventStore
	userStore     UserStore
	categoryStore TaxonomyStore[entity.Category]
	cityStore     TaxonomyStore[entity.City]
	areaStore     TaxonomyStore[entity.Area]
}

func NewEventService(
	eventStore EventStore,
	userStore UserStore,
	categoryStore TaxonomyStore[entity.Category],
	cityStore TaxonomyStore[entity.City],
	areaStore TaxonomyStore[entity.Area],
) *EventService {
	return &EventService{
		eventStore:    eventStore,
		userStore:     userStore,
		categoryStore: categoryStore,
		cityStore:     cityStore,
		areaStore:     areaStore,
	}
}

type CreateEventInput struct {
	Title           string
	Description     string
	SportCategoryID string
	CityID          string
	AreaID          string
	Date            string
	Time            string
	Location        string
	MaxParticipants *int
	SkillLevel      string
	Image           string
	Requirements    string
	ContactInfo     string
}

type UpdateEventInput struct {
	Title           *string
	Description     *string
	SportCategoryID *string
	CityID          *string
	AreaID          *string
	Date            *string
	Time            *string
	Location        *string
	MaxParticipants *int
	SkillLevel      *string
	Image           *string
	Requirements    *string
	ContactInfo     *string
	Status          *string
}

// Create validates the input, verifies the taxonomy references exist and
// stores the event with the caller as organizer and sole participant.
// Past dates are accepted: listings filter them out, matching the original
// behavior of leaving date policing to the client.
func (s *EventService) Create(ctx context.Context, organizerID primitive.ObjectID, input CreateEventInput) (*entity.Event, error) {
	input.Title = strings.TrimSpace(input.Title)

	switch {
	case input.Title == "" || len(input.Title) > maxTitleLength:
		return nil, fmt.Errorf("%w: title must be 1-%d characters", entity.ErrValidation, maxTitleLength)
	case input.Description == "" || len(input.Description) > maxDescriptionLength:
		return nil, fmt.Errorf("%w: description must be 1-%d characters", entity.ErrValidation, maxDescriptionLength)
	case input.Location == "" || len(input.Location) > maxEventLocationLength:
		return nil, fmt.Errorf("%w: location must be 1-%d characters", entity.ErrValidation, maxEventLocationLength)
	case len(input.Requirements) > maxRequirementsLength:
		return nil, fmt.Errorf("%w: requirements must be at most %d characters", entity.ErrValidation, maxRequirementsLength)
	case len(input.ContactInfo) > maxContactInfoLength:
		return nil, fmt.Errorf("%w: contact info must be at most %d characters", entity.ErrValidation, maxContactInfoLength)
	}

	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(clockLayout, input.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", entity.ErrValidation)
	}

	skillLevel := input.SkillLevel
	if skillLevel == "" {
		skillLevel = entity.SkillLevelAll
	}
	if !entity.ValidSkillLevel(skillLevel) {
		return nil, fmt.Errorf("%w: unknown skill level %q", entity.ErrValidation, skillLevel)
	}

	if input.MaxParticipants != nil && *input.MaxParticipants < entity.MinCapacity {
		return nil, fmt.Errorf("%w: maxParticipants must be at least %d", entity.ErrValidation, entity.MinCapacity)
	}

	categoryID, err := s.resolveCategory(ctx, input.SportCategoryID)
	if err != nil {
		return nil, err
	}
	cityID, err := s.resolveCity(ctx, input.CityID)
	if err != nil {
		return nil, err
	}
	areaID, err := s.resolveArea(ctx, input.AreaID)
	if err != nil {
		return nil, err
	}

	return s.eventStore.InsertOne(ctx, &entity.Event{
		Title:           input.Title,
		Description:     input.Description,
		SportCategoryID: categoryID,
		CityID:          cityID,
		AreaID:          areaID,
		OrganizerID:     organizerID,
		ParticipantIDs:  []primitive.ObjectID{organizerID},
		Date:            date,
		Time:            input.Time,
		Location:        input.Location,
		MaxParticipants: input.MaxParticipants,
		SkillLevel:      skillLevel,
		Image:           input.Image,
		Requirements:    input.Requirements,
		ContactInfo:     input.ContactInfo,
		Status:          entity.EventStatusActive,
	})
}

// Update applies a field-level patch. Only the organizer may edit; admins
// get no override here, unlike Delete. Their moderation tool is deletion.
func (s *EventService) Update(ctx context.Context, principalID primitive.ObjectID, hexID string, input UpdateEventInput) (*entity.Event, error) {
	eventID, err := parseEventID(hexID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventStore.FindOneByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOrganizer(principalID) {
		return nil, fmt.Errorf("%w: only the organizer can update this event", entity.ErrForbidden)
	}

	patch, err := s.buildUpdatePatch(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return event, nil
	}

	return s.eventStore.UpdateOne(ctx, eventID, patch)
}

func (s *EventService) buildUpdatePatch(ctx context.Context, input UpdateEventInput) (bson.M, error) {
	patch := bson.M{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > maxTitleLength {
			return nil, fmt.Errorf("%w: title must be 1-%d characters", entity.ErrValidation, maxTitleLength)
		}
		patch["title"] = title
	}
	if input.Description != nil {
		if *input.Description == "" || len(*input.Description) > maxDescriptionLength {
			return nil, fmt.Errorf("%w: description must be 1-%d characters", entity.ErrValidation, maxDescriptionLength)
		}
		patch["description"] = *input.Description
	}
	if input.SportCategoryID != nil {
		id, err := s.resolveCategory(ctx, *input.SportCategoryID)
		if err != nil {
			return nil, err
		}
		patch["sportCategory"] = id
	}
	if input.CityID != nil {
		id, err := s.resolveCity(ctx, *input.CityID)
		if err != nil {
			return nil, err
		}
		patch["city"] = id
	}
	if input.AreaID != nil {
		id, err := s.resolveArea(ctx, *input.AreaID)
		if err != nil {
			return nil, err
		}
		patch["area"] = id
	}
	if input.Date != nil {
		date, err := parseEventDate(*input.Date)
		if err != nil {
			return nil, err
		}
		patch["date"] = date
	}
	if input.Time != nil {
		if _, err := time.Parse(clockLayout, *input.Time); err != nil {
			return nil, fmt.Errorf("%w: time must be HH:MM", entity.ErrValidation)
		}
		patch["time"] = *input.Time
	}
	if input.Location != nil {
		if *input.Location == "" || len(*input.Location) > maxEventLocationLength {
			return nil, fmt.Errorf("%w: location must be 1-%d characters", entity.ErrValidation, maxEventLocationLength)
		}
		patch["location"] = *input.Location
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants < entity.MinCapacity {
			return nil, fmt.Errorf("%w: maxParticipants must be at least %d", entity.ErrValidation, entity.MinCapacity)
		}
		patch["maxParticipants"] = *input.MaxParticipants
	}
	if input.SkillLevel != nil {
		if !entity.ValidSkillLevel(*input.SkillLevel) {
			return nil, fmt.Errorf("%w: unknown skill level %q", entity.ErrValidation, *input.SkillLevel)
		}
		patch["skillLevel"] = *input.SkillLevel
	}
	if input.Status != nil {
		if !entity.ValidEventStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, *input.Status)
		}
		patch["status"] = *input.Status
	}
	if input.Image != nil {
		patch["image"] = *input.Image
	}
	if input.Requirements != nil {
		if len(*input.Requirements) > maxRequirementsLength {
			return nil, fmt.Errorf("%w: requirements must be at most %d characters", entity.ErrValidation, maxRequirementsLength)
		}
		patch["requirements"] = *input.Requirements
	}
	if input.ContactInfo != nil {
		if len(*input.ContactInfo) > maxContactInfoLength {
			return nil, fmt.Errorf("%w: contact info must be at most %d characters", entity.ErrValidation, maxContactInfoLength)
		}
		patch["contactInfo"] = *input.ContactInfo
	}

	return patch, nil
}

// Delete removes an event. Allowed for the organizer and for admins; the
// principal's role is re-read from the store, never taken from the token.
func (s *EventService) Delete(ctx context.Context, principalID primitive.ObjectID, hexID string) error {
	eventID, err := parseEventID(hexID)
	if err != nil {
		return err
	}

	event, err := s.eventStore.FindOneByID(ctx, eventID)
	if err != nil {
		return err
	}

	if !event.IsOrganizer(principalID) {
		principal, err := s.userStore.FindOneByID(ctx, principalID)
		if err != nil {
			return err
		}
		if !principal.IsAdmin() {
			return fmt.Errorf("%w: only the organizer or an admin can delete this event", entity.ErrForbidden)
		}
	}

	return s.eventStore.DeleteOneByID(ctx, eventID)
}

// Join adds the principal to the participant set. The store performs the
// membership and capacity checks together with the append in one
// conditional update; when that update matches nothing, the event is
// re-read once purely to tell the caller why.
func (s *EventService) Join(ctx context.Context, principalID primitive.ObjectID, hexID string) (*entity.Event, error) {
	eventID, err := parseEventID(hexID)
	if err != nil {
		return nil, err
	}

	joined, err := s.eventStore.AddParticipant(ctx, eventID, principalID)
	if err != nil {
		return nil, err
	}
	if joined {
		return s.eventStore.FindOneByID(ctx, eventID)
	}

	event, err := s.eventStore.FindOneByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.HasParticipant(principalID) {
		return nil, entity.ErrAlreadyJoined
	}

	return nil, entity.ErrEventFull
}

// Leave removes the principal from the participant set. The organizer is
// permanently a participant and cannot leave their own event.
func (s *EventService) Leave(ctx context.Context, principalID primitive.ObjectID, hexID string) (*entity.Event, error) {
	eventID, err := parseEventID(hexID)
	if err != nil {
		return nil, err
	}

	left, err := s.eventStore.RemoveParticipant(ctx, eventID, principalID)
	if err != nil {
		return nil, err
	}
	if left {
		return s.eventStore.FindOneByID(ctx, eventID)
	}

	event, err := s.eventStore.FindOneByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsOrganizer(principalID) {
		return nil, entity.ErrOrganizerCannotLeave
	}

	return nil, entity.ErrNotJoined
}

func (s *EventService) Get(ctx context.Context, hexID string) (*entity.Event, error) {
	eventID, err := parseEventID(hexID)
	if err != nil {
		return nil, err
	}

	return s.eventStore.FindOneByID(ctx, eventID)
}

func (s *EventService) ListFeatured(ctx context.Context) ([]*entity.Event, error) {
	return s.eventStore.FindManyUpcomingFeatured(ctx, featuredEventsLimit)
}

func (s *EventService) List(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, int64, error) {
	return s.eventStore.FindManyFiltered(ctx, filter)
}

func (s *EventService) ListCreated(ctx context.Context, principalID primitive.ObjectID) ([]*entity.Event, error) {
	return s.eventStore.FindManyByOrganizerID(ctx, principalID)
}

func (s *EventService) ListJoined(ctx context.Context, principalID primitive.ObjectID) ([]*entity.Event, error) {
	return s.eventStore.FindManyByParticipantID(ctx, principalID)
}

// Search ranks upcoming events by fuzzy similarity of the query against
// title and location, so near-misses like "futbol" still find football
// events.
func (s *EventService) Search(ctx context.Context, query string) ([]*entity.Event, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", entity.ErrValidation)
	}

	events, err := s.eventStore.FindManyUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		event *entity.Event
		score float32
	}

	var matches []scored
	for _, event := range events {
		score := similarity(query, event.Title)
		if locScore := similarity(query, event.Location); locScore > score {
			score = locScore
		}
		if score >= searchSimilarityThreshold {
			matches = append(matches, scored{event: event, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]*entity.Event, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.event)
	}

	return result, nil
}

// similarity is the best Jaro-Winkler score of query against the whole
// candidate and each of its words. Substring hits count as exact.
func similarity(query, candidate string) float32 {
	candidate = strings.ToLower(candidate)
	if strings.Contains(candidate, query) {
		return 1
	}

	best, err := edlib.StringsSimilarity(query, candidate, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	for _, word := range strings.Fields(candidate) {
		score, err := edlib.StringsSimilarity(query, word, edlib.JaroWinkler)
		if err == nil && score > best {
			best = score
		}
	}

	return best
}

func (s *EventService) resolveCategory(ctx context.Context, hexID string) (primitive.ObjectID, error) {
	return resolveReference(ctx, s.categoryStore, hexID, "category")
}

func (s *EventService) resolveCity(ctx context.Context, hexID string) (primitive.ObjectID, error) {
	return resolveReference(ctx, s.cityStore, hexID, "city")
}

func (s *EventService) resolveArea(ctx context.Context, hexID string) (primitive.ObjectID, error) {
	return resolveReference(ctx, s.areaStore, hexID, "area")
}

// resolveReference parses a taxonomy id and confirms the referenced
// document exists. References are opaque here: nothing beyond existence is
// checked.
func resolveReference[T any](ctx context.Context, store TaxonomyStore[T], hexID, kind string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s id", entity.ErrValidation, kind)
	}

	exists, err := store.ExistsByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !exists {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown %s", entity.ErrValidation, kind)
	}

	return id, nil
}

func parseEventID(hexID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, entity.ErrNotFound
	}
	return id, nil
}

func parseEventDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", entity.ErrValidation)
	}
	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date, nil
	}
	date, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC3339", entity.ErrValidation)
	}
	return date, nil
}
