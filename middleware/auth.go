package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sportmeet/api/entity"
	"github.com/sportmeet/api/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	principalIDKey   = "principalID"
	principalUserKey = "principalUser"
)

type Auth struct {
	tokenService *service.TokenService
	userStore    service.UserStore
}

func NewAuth(tokenService *service.TokenService, userStore service.UserStore) *Auth {
	return &Auth{
		tokenService: tokenService,
		userStore:    userStore,
	}
}

// RequireAuthenticated verifies the bearer token and attaches the principal
// id to the request context. It does not check the account still exists;
// handlers that need the record load it themselves.
func (m *Auth) RequireAuthenticated(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	hexID, err := m.tokenService.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		return
	}

	principalID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		return
	}

	c.Set(principalIDKey, principalID)
	c.Next()
}

// RequireAdmin must run after RequireAuthenticated. The role is re-read
// from the store on every request: a token issued before a demotion must
// not keep opening admin routes.
func (m *Auth) RequireAdmin(c *gin.Context) {
	principalID, ok := PrincipalID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	user, err := m.userStore.FindOneByID(c.Request.Context(), principalID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}
	if !user.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
		return
	}

	c.Set(principalUserKey, user)
	c.Next()
}

// PrincipalID returns the authenticated user id set by RequireAuthenticated.
func PrincipalID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(principalIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}

	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// PrincipalUser returns the user loaded by RequireAdmin, if any.
func PrincipalUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(principalUserKey)
	if !ok {
		return nil, false
	}

	user, ok := v.(*entity.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
