package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportmeet/api/middleware"
	"github.com/sportmeet/api/service"
)

type UserController struct {
	UserService *service.UserService
}

type updateProfileRequest struct {
	Name               string   `json:"name" binding:"required"`
	Bio                string   `json:"bio"`
	Location           string   `json:"location"`
	Avatar             string   `json:"avatar"`
	FavoriteCategories []string `json:"favoriteCategories"`
}

func (h *UserController) GetProfile(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	user, err := h.UserService.GetProfile(c.Request.Context(), principalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.UserService.UpdateProfile(c.Request.Context(), principalID, service.ProfileUpdate{
		Name:               req.Name,
		Bio:                req.Bio,
		Location:           req.Location,
		Avatar:             req.Avatar,
		FavoriteCategories: req.FavoriteCategories,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserController) GetUser(c *gin.Context) {
	user, err := h.UserService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
