package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportmeet/api/entity"
	"github.com/sportmeet/api/service"
)

type ContactController struct {
	ContactService *service.ContactService
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *ContactController) Create(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	contact, err := h.ContactService.Create(c.Request.Context(), &entity.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactController) List(c *gin.Context) {
	contacts, err := h.ContactService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}
