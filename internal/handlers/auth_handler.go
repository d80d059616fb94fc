package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carlosintrieri/AV3/internal/models"
	"github.com/carlosintrieri/AV3/internal/repository"
	"github.com/carlosintrieri/AV3/internal/utils"
)

// UserStore looks up operator accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	users UserStore
}

func NewAuthHandler(users UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login checks the operator credentials and returns the profile. No session
// token is issued; the frontend keeps its own logged-in flag.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email e senha são obrigatórios"})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha incorretos"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha incorretos"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Login realizado com sucesso",
		User:    *user,
	})
}
