package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportmeet/api/middleware"
	"github.com/sportmeet/api/service"
)

type AdminController struct {
	AdminService *service.AdminService
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminController) ListUsers(c *gin.Context) {
	users, err := h.AdminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminController) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.AdminService.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminController) DeleteUser(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	if err := h.AdminService.DeleteUser(c.Request.Context(), principalID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *AdminController) ListEvents(c *gin.Context) {
	events, err := h.AdminService.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *AdminController) DeleteEvent(c *gin.Context) {
	if err := h.AdminService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *AdminController) Stats(c *gin.Context) {
	dashboard, err := h.AdminService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
