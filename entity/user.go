package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`

	Avatar             string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio                string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Location           string               `bson:"location,omitempty" json:"location,omitempty"`
	FavoriteCategories []primitive.ObjectID `bson:"favoriteCategories,omitempty" json:"favoriteCategories,omitempty"`

	Verified bool `bson:"verified" json:"verified"`
	IsActive bool `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the projection embedded in event documents after a $lookup.
// It never carries credentials.
type PublicUser struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email" json:"email"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio    string             `bson:"bio,omitempty" json:"bio,omitempty"`
}
