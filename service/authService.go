package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxNameLength     = 50
	bcryptCost        = 10
)

type AuthService struct {
	userStore    UserStore
	tokenService *TokenService
}

func NewAuthService(userStore UserStore, tokenService *TokenService) *AuthService {
	return &AuthService{
		userStore:    userStore,
		tokenService: tokenService,
	}
}

// Register creates an account and signs the caller in. The plaintext
// password is hashed before it reaches the store and is never returned.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	switch {
	case name == "" || len(name) > maxNameLength:
		return nil, "", fmt.Errorf("%w: name must be 1-%d characters", entity.ErrValidation, maxNameLength)
	case email == "" || !strings.Contains(email, "@"):
		return nil, "", fmt.Errorf("%w: a valid email is required", entity.ErrValidation)
	case len(password) < minPasswordLength:
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", entity.ErrValidation, minPasswordLength)
	}

	if _, err := s.userStore.FindOneByEmail(ctx, email); err == nil {
		return nil, "", entity.ErrEmailTaken
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, "", err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userStore.InsertOne(ctx, &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     entity.RoleUser,
		IsActive: true,
	})
	if err != nil {
		// The unique email index backstops the pre-read under racing
		// registrations.
		return nil, "", err
	}

	token, err := s.tokenService.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.userStore.FindOneByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// CurrentUser resolves the principal's account. The token may outlive the
// account, so callers get ErrNotFound for deleted users.
func (s *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	user, err := s.userStore.FindOneByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword is the single hashing point: every code path that sets or
// changes a password goes through it.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
