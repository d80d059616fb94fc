package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carlosintrieri/AV3/internal/models"
)

// ResourceStore is the persistence surface the resource endpoints need.
type ResourceStore interface {
	List(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	Create(ctx context.Context, req *models.CreateResourceRequest, maintenance *time.Time) (*models.Resource, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateResourceRequest, maintenance *time.Time) (*models.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResourceHandler struct {
	resources ResourceStore
}

func NewResourceHandler(resources ResourceStore) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// List returns every resource, newest first. Degrades to an empty list on
// storage failure so the frontend keeps rendering.
func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.resources.List(c.Request.Context())
	if err != nil {
		log.Printf("Erro ao buscar recursos: %v", err)
		c.JSON(http.StatusOK, []models.Resource{})
		return
	}
	c.JSON(http.StatusOK, resources)
}

// GetByID returns a single resource.
func (h *ResourceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recurso não encontrado"})
		return
	}

	resource, err := h.resources.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Recurso não encontrado")
		return
	}
	c.JSON(http.StatusOK, resource)
}

// Create registers a resource. Name and type are required; the rest depends
// on the resource type.
func (h *ResourceHandler) Create(c *gin.Context) {
	var req models.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome e tipo são obrigatórios"})
		return
	}

	var maintenance *time.Time
	if req.Maintenance != nil && *req.Maintenance != "" {
		d, err := parseDate(*req.Maintenance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Data de manutenção inválida"})
			return
		}
		maintenance = &d
	}

	resource, err := h.resources.Create(c.Request.Context(), &req, maintenance)
	if err != nil {
		respondError(c, err, "Erro ao criar recurso")
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// Update applies a partial patch. Fields absent from the body are left
// alone; an explicit null clears the field.
func (h *ResourceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recurso não encontrado"})
		return
	}

	var req models.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var maintenance *time.Time
	if req.Maintenance.Present && req.Maintenance.Valid && req.Maintenance.Value != "" {
		d, err := parseDate(req.Maintenance.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Data de manutenção inválida"})
			return
		}
		maintenance = &d
	}

	resource, err := h.resources.Update(c.Request.Context(), id, &req, maintenance)
	if err != nil {
		respondError(c, err, "Erro ao atualizar recurso")
		return
	}
	c.JSON(http.StatusOK, resource)
}

// Delete removes a resource.
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recurso não encontrado"})
		return
	}

	if err := h.resources.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Erro ao deletar recurso")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recurso deletado com sucesso"})
}
