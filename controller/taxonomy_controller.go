package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportmeet/api/entity"
	"github.com/sportmeet/api/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaxonomyController serves the reference-data resources the event form is
// built from. Reads are public; writes sit behind the admin middleware.
type TaxonomyController struct {
	CategoryService *service.TaxonomyService[entity.Category]
	CityService     *service.TaxonomyService[entity.City]
	AreaService     *service.TaxonomyService[entity.Area]
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type cityRequest struct {
	Name string `json:"name" binding:"required"`
}

type areaRequest struct {
	Name   string `json:"name" binding:"required"`
	CityID string `json:"cityId"`
}

func (h *TaxonomyController) ListCategories(c *gin.Context) {
	listTaxonomy(c, h.CategoryService)
}

func (h *TaxonomyController) GetCategory(c *gin.Context) {
	getTaxonomy(c, h.CategoryService)
}

func (h *TaxonomyController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	created, err := h.CategoryService.Create(c.Request.Context(), &entity.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TaxonomyController) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, err := h.CategoryService.Update(c.Request.Context(), c.Param("id"), bson.M{
		"name":        req.Name,
		"description": req.Description,
		"icon":        req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaxonomyController) DeleteCategory(c *gin.Context) {
	deleteTaxonomy(c, h.CategoryService)
}

func (h *TaxonomyController) ListCities(c *gin.Context) {
	listTaxonomy(c, h.CityService)
}

func (h *TaxonomyController) GetCity(c *gin.Context) {
	getTaxonomy(c, h.CityService)
}

func (h *TaxonomyController) CreateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	created, err := h.CityService.Create(c.Request.Context(), &entity.City{Name: req.Name})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TaxonomyController) UpdateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, err := h.CityService.Update(c.Request.Context(), c.Param("id"), bson.M{"name": req.Name})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaxonomyController) DeleteCity(c *gin.Context) {
	deleteTaxonomy(c, h.CityService)
}

func (h *TaxonomyController) ListAreas(c *gin.Context) {
	listTaxonomy(c, h.AreaService)
}

func (h *TaxonomyController) GetArea(c *gin.Context) {
	getTaxonomy(c, h.AreaService)
}

func (h *TaxonomyController) CreateArea(c *gin.Context) {
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	area := &entity.Area{Name: req.Name}
	if req.CityID != "" {
		cityID, err := primitive.ObjectIDFromHex(req.CityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid city id"})
			return
		}
		area.CityID = cityID
	}

	created, err := h.AreaService.Create(c.Request.Context(), area)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TaxonomyController) UpdateArea(c *gin.Context) {
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	patch := bson.M{"name": req.Name}
	if req.CityID != "" {
		cityID, err := primitive.ObjectIDFromHex(req.CityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid city id"})
			return
		}
		patch["cityId"] = cityID
	}

	updated, err := h.AreaService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaxonomyController) DeleteArea(c *gin.Context) {
	deleteTaxonomy(c, h.AreaService)
}

func listTaxonomy[T any](c *gin.Context, svc *service.TaxonomyService[T]) {
	docs, err := svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

func getTaxonomy[T any](c *gin.Context, svc *service.TaxonomyService[T]) {
	doc, err := svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func deleteTaxonomy[T any](c *gin.Context, svc *service.TaxonomyService[T]) {
	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
