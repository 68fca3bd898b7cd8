package service

import (
	"context"
	"fmt"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxBioLength      = 500
	maxLocationLength = 100
)

type UserService struct {
	userStore UserStore
}

func NewUserService(userStore UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

type ProfileUpdate struct {
	Name               string
	Bio                string
	Location           string
	Avatar             string
	FavoriteCategories []string
}

func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	user, err := s.userStore.FindOneByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileUpdate) (*entity.User, error) {
	switch {
	case input.Name == "" || len(input.Name) > maxNameLength:
		return nil, fmt.Errorf("%w: name must be 1-%d characters", entity.ErrValidation, maxNameLength)
	case len(input.Bio) > maxBioLength:
		return nil, fmt.Errorf("%w: bio must be at most %d characters", entity.ErrValidation, maxBioLength)
	case len(input.Location) > maxLocationLength:
		return nil, fmt.Errorf("%w: location must be at most %d characters", entity.ErrValidation, maxLocationLength)
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(input.FavoriteCategories))
	for _, hex := range input.FavoriteCategories {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category id %q", entity.ErrValidation, hex)
		}
		categoryIDs = append(categoryIDs, id)
	}

	patch := bson.M{
		"name":               input.Name,
		"bio":                input.Bio,
		"location":           input.Location,
		"favoriteCategories": categoryIDs,
	}
	if input.Avatar != "" {
		// Avatar upload happens elsewhere; we only record the resolved URL.
		patch["avatar"] = input.Avatar
	}

	user, err := s.userStore.UpdateOne(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// GetUser returns the public projection of any account.
func (s *UserService) GetUser(ctx context.Context, hexID string) (*entity.User, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, entity.ErrNotFound
	}

	user, err := s.userStore.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}
