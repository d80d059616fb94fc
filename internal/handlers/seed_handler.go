package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DataSeeder loads the demo fixtures. Both calls are idempotent: data is
// only inserted into an empty table.
type DataSeeder interface {
	SeedProjects(ctx context.Context) (int, bool, error)
	SeedResources(ctx context.Context) (int, bool, error)
}

type SeedHandler struct {
	seeder DataSeeder
}

func NewSeedHandler(seeder DataSeeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Projects loads the demo aircraft when the projects table is empty.
func (h *SeedHandler) Projects(c *gin.Context) {
	count, seeded, err := h.seeder.SeedProjects(c.Request.Context())
	if err != nil {
		respondError(c, err, "Erro ao popular projetos")
		return
	}

	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "Banco já possui projetos", "count": count})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Projetos de demonstração criados", "count": count})
}

// Resources loads the demo resources when the resources table is empty.
func (h *SeedHandler) Resources(c *gin.Context) {
	count, seeded, err := h.seeder.SeedResources(c.Request.Context())
	if err != nil {
		respondError(c, err, "Erro ao popular recursos")
		return
	}

	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "Banco já possui recursos", "count": count})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recursos de demonstração criados", "count": count})
}
