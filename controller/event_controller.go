package controller

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportmeet/api/entity"
	"github.com/sportmeet/api/middleware"
	"github.com/sportmeet/api/service"
)

type EventController struct {
	EventService *service.EventService
}

type createEventRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	SportCategoryID string `json:"sportCategory" binding:"required"`
	CityID          string `json:"city" binding:"required"`
	AreaID          string `json:"area" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Location        string `json:"location" binding:"required"`
	MaxParticipants *int   `json:"maxParticipants"`
	SkillLevel      string `json:"skillLevel"`
	Image           string `json:"image"`
	Requirements    string `json:"requirements"`
	ContactInfo     string `json:"contactInfo"`
}

type updateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	SportCategoryID *string `json:"sportCategory"`
	CityID          *string `json:"city"`
	AreaID          *string `json:"area"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Location        *string `json:"location"`
	MaxParticipants *int    `json:"maxParticipants"`
	SkillLevel      *string `json:"skillLevel"`
	Image           *string `json:"image"`
	Requirements    *string `json:"requirements"`
	ContactInfo     *string `json:"contactInfo"`
	Status          *string `json:"status"`
}

type listEventsQuery struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
	SkillLevel string `form:"skillLevel"`
	Date       string `form:"date"`
	Search     string `form:"search"`
	SortBy     string `form:"sortBy,default=date"`
	SortOrder  string `form:"sortOrder,default=asc"`
}

func (h *EventController) Featured(c *gin.Context) {
	events, err := h.EventService.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventController) List(c *gin.Context) {
	var query listEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindingError(c, err)
		return
	}

	filter := entity.EventFilter{
		SkillLevel: query.SkillLevel,
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
		Page:       query.Page,
		Limit:      query.Limit,
	}
	if query.Date != "" {
		date, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "date must be YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	events, total, err := h.EventService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"totalPages":  int(math.Ceil(float64(total) / float64(filter.Limit))),
		"currentPage": filter.Page,
		"total":       total,
	})
}

func (h *EventController) Search(c *gin.Context) {
	events, err := h.EventService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventController) Created(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	events, err := h.EventService.ListCreated(c.Request.Context(), principalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventController) Joined(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	events, err := h.EventService.ListJoined(c.Request.Context(), principalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventController) Get(c *gin.Context) {
	event, err := h.EventService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventController) Create(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	event, err := h.EventService.Create(c.Request.Context(), principalID, service.CreateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		SportCategoryID: req.SportCategoryID,
		CityID:          req.CityID,
		AreaID:          req.AreaID,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		SkillLevel:      req.SkillLevel,
		Image:           req.Image,
		Requirements:    req.Requirements,
		ContactInfo:     req.ContactInfo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventController) Update(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	event, err := h.EventService.Update(c.Request.Context(), principalID, c.Param("id"), service.UpdateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		SportCategoryID: req.SportCategoryID,
		CityID:          req.CityID,
		AreaID:          req.AreaID,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		SkillLevel:      req.SkillLevel,
		Image:           req.Image,
		Requirements:    req.Requirements,
		ContactInfo:     req.ContactInfo,
		Status:          req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventController) Delete(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	if err := h.EventService.Delete(c.Request.Context(), principalID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *EventController) Join(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	event, err := h.EventService.Join(c.Request.Context(), principalID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventController) Leave(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	event, err := h.EventService.Leave(c.Request.Context(), principalID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
