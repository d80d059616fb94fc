package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carlosintrieri/AV3/internal/models"
	"github.com/carlosintrieri/AV3/internal/repository"
	"github.com/carlosintrieri/AV3/internal/utils"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := utils.HashPassword("admin123")
	require.NoError(t, err)

	store := &fakeUserStore{users: map[string]*models.User{
		"admin@aerocode.com": {
			ID:           uuid.New(),
			Email:        "admin@aerocode.com",
			PasswordHash: hash,
			Name:         "Administrador",
		},
	}}

	router := gin.New()
	router.POST("/api/auth/login", NewAuthHandler(store).Login)
	return router
}

func TestLogin_Success(t *testing.T) {
	router := newAuthRouter(t)

	w := performRequest(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@aerocode.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[models.LoginResponse](t, w)
	require.Equal(t, "Login realizado com sucesso", resp.Message)
	require.Equal(t, "admin@aerocode.com", resp.User.Email)
	require.NotContains(t, w.Body.String(), "password")
}

func TestLogin_NormalizesEmail(t *testing.T) {
	router := newAuthRouter(t)

	w := performRequest(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "  Admin@AeroCode.com ",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	router := newAuthRouter(t)

	wrongPassword := performRequest(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@aerocode.com",
		"password": "errada",
	})
	unknownEmail := performRequest(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ninguem@aerocode.com",
		"password": "admin123",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	// Identical responses so the endpoint does not leak which emails exist.
	require.Equal(t, strings.TrimSpace(wrongPassword.Body.String()), strings.TrimSpace(unknownEmail.Body.String()))
	require.Contains(t, wrongPassword.Body.String(), "Email ou senha incorretos")
}

func TestLogin_MissingFields(t *testing.T) {
	router := newAuthRouter(t)

	w := performRequest(t, router, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@aerocode.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody[map[string]string](t, w)
	require.Equal(t, "Email e senha são obrigatórios", body["error"])
}
