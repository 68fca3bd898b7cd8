package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

const (
	SkillLevelBeginner     = "beginner"
	SkillLevelIntermediate = "intermediate"
	SkillLevelAdvanced     = "advanced"
	SkillLevelAll          = "all"
)

// MinCapacity is the smallest allowed maxParticipants value. An event for
// fewer than two people is not an event.
const MinCapacity = 2

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`

	SportCategoryID primitive.ObjectID `bson:"sportCategory" json:"sportCategoryId"`
	CityID          primitive.ObjectID `bson:"city" json:"cityId"`
	AreaID          primitive.ObjectID `bson:"area" json:"areaId"`

	OrganizerID    primitive.ObjectID   `bson:"organizer" json:"organizerId"`
	ParticipantIDs []primitive.ObjectID `bson:"participants" json:"participantIds"`

	Date            time.Time `bson:"date" json:"date"`
	Time            string    `bson:"time" json:"time"`
	Location        string    `bson:"location" json:"location"`
	MaxParticipants *int      `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty"`
	SkillLevel      string    `bson:"skillLevel" json:"skillLevel"`

	Image        string `bson:"image,omitempty" json:"image,omitempty"`
	Requirements string `bson:"requirements,omitempty" json:"requirements,omitempty"`
	ContactInfo  string `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`

	Featured bool   `bson:"featured" json:"featured"`
	Status   string `bson:"status" json:"status"`

	// Hydrated by the repository's $lookup pipeline, never written back.
	Organizer     *PublicUser  `bson:"organizerDoc,omitempty" json:"organizer,omitempty"`
	Participants  []PublicUser `bson:"participantDocs,omitempty" json:"participants,omitempty"`
	SportCategory *Category    `bson:"sportCategoryDoc,omitempty" json:"sportCategory,omitempty"`
	City          *City        `bson:"cityDoc,omitempty" json:"city,omitempty"`
	Area          *Area        `bson:"areaDoc,omitempty" json:"area,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

func (e *Event) HasParticipant(userID primitive.ObjectID) bool {
	for _, id := range e.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (e *Event) IsOrganizer(userID primitive.ObjectID) bool {
	return e.OrganizerID == userID
}

func (e *Event) IsFull() bool {
	return e.MaxParticipants != nil && len(e.ParticipantIDs) >= *e.MaxParticipants
}

// EventFilter narrows event listings. Zero values mean "no constraint";
// Page and Limit are normalized by the repository.
type EventFilter struct {
	SkillLevel string
	Date       *time.Time
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

func ValidSkillLevel(s string) bool {
	switch s {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelAll:
		return true
	}
	return false
}

func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusActive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}
