package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carlosintrieri/AV3/internal/models"
)

// ActivityStore reads the production event log.
type ActivityStore interface {
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
	ByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Activity, error)
}

type ActivityHandler struct {
	activities ActivityStore
}

func NewActivityHandler(activities ActivityStore) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// Recent returns the newest activities across all projects. The limit query
// parameter defaults to 10. Degrades to an empty list on storage failure.
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	activities, err := h.activities.Recent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Erro ao buscar atividades: %v", err)
		c.JSON(http.StatusOK, []models.Activity{})
		return
	}
	c.JSON(http.StatusOK, activities)
}

// ByProject returns every activity of one project, newest first. Degrades
// to an empty list on storage failure.
func (h *ActivityHandler) ByProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	activities, err := h.activities.ByProject(c.Request.Context(), id, 0)
	if err != nil {
		log.Printf("Erro ao buscar atividades do projeto: %v", err)
		c.JSON(http.StatusOK, []models.Activity{})
		return
	}
	c.JSON(http.StatusOK, activities)
}
