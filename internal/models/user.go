package models

import (
	"time"

	"github.com/google/uuid"
)

// User é a conta fixa do operador.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoginRequest para autenticação do operador
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse retorna o perfil sem o hash de senha.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
