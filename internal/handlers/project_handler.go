package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carlosintrieri/AV3/internal/cache"
	"github.com/carlosintrieri/AV3/internal/models"
)

// ProjectStore is the persistence surface the project endpoints need.
type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, req *models.CreateProjectRequest, deadline time.Time, image string) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateProjectRequest, deadline *time.Time) (*models.Project, error)
	AdvanceStage(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageUploader stores an uploaded aircraft photo and returns its public URL.
type ImageUploader interface {
	UploadProjectImage(ctx context.Context, projectID uuid.UUID, file *multipart.FileHeader) (string, error)
}

// ImagePicker supplies the stock photo for newly created projects.
type ImagePicker func() string

type ProjectHandler struct {
	projects   ProjectStore
	activities ActivityStore
	uploader   ImageUploader
	cache      *cache.Client
	pickImage  ImagePicker
}

func NewProjectHandler(projects ProjectStore, activities ActivityStore, uploader ImageUploader, cacheClient *cache.Client, pickImage ImagePicker) *ProjectHandler {
	return &ProjectHandler{
		projects:   projects,
		activities: activities,
		uploader:   uploader,
		cache:      cacheClient,
		pickImage:  pickImage,
	}
}

// List returns every project with its stages. Degrades to an empty list on
// storage failure so the dashboard keeps rendering.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		log.Printf("Erro ao buscar projetos: %v", err)
		c.JSON(http.StatusOK, []models.Project{})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetByID returns a project with stages and its 10 most recent activities.
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Projeto não encontrado")
		return
	}

	activities, err := h.activities.ByProject(c.Request.Context(), id, 10)
	if err != nil {
		log.Printf("Erro ao buscar atividades do projeto %s: %v", id, err)
	} else {
		project.Activities = activities
	}

	c.JSON(http.StatusOK, project)
}

// Create validates the required fields and registers a new aircraft at the
// back of the queue.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome, modelo e prazo são obrigatórios"})
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Prazo inválido"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), &req, deadline, h.pickImage())
	if err != nil {
		respondError(c, err, "Erro ao criar projeto")
		return
	}

	h.invalidateDashboard(c.Request.Context())
	c.JSON(http.StatusCreated, project)
}

// Update patches the descriptive fields of a project.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var deadline *time.Time
	if req.Deadline != nil {
		d, err := parseDate(*req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Prazo inválido"})
			return
		}
		deadline = &d
	}

	project, err := h.projects.Update(c.Request.Context(), id, &req, deadline)
	if err != nil {
		respondError(c, err, "Erro ao atualizar projeto")
		return
	}

	h.invalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, project)
}

// Advance marks the current stage done and moves the project forward in the
// queue state machine.
func (h *ProjectHandler) Advance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	project, err := h.projects.AdvanceStage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Erro ao avançar etapa")
		return
	}

	h.invalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, project)
}

// Complete is the explicit completion entry point, valid only when every
// stage is already done.
func (h *ProjectHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	project, err := h.projects.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Erro ao concluir projeto")
		return
	}

	h.invalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, project)
}

// Delete removes a project and everything that hangs off it.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Erro ao deletar projeto")
		return
	}

	h.invalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Projeto deletado com sucesso"})
}

// UploadImage stores an aircraft photo and points the project at it.
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload de imagens não configurado"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Projeto não encontrado"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Arquivo de imagem é obrigatório"})
		return
	}

	url, err := h.uploader.UploadProjectImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, err, "Erro ao enviar imagem")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Imagem enviada com sucesso", "image": url})
}

func (h *ProjectHandler) invalidateDashboard(ctx context.Context) {
	if err := h.cache.InvalidateDashboard(ctx); err != nil {
		log.Printf("Erro ao invalidar cache do dashboard (não crítico): %v", err)
	}
}
