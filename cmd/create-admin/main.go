package main

import (
	"context"
	"log"
	"time"

	"github.com/carlosintrieri/AV3/internal/config"
	"github.com/carlosintrieri/AV3/internal/database"
	"github.com/carlosintrieri/AV3/internal/repository"
	"github.com/carlosintrieri/AV3/internal/utils"
)

// Creates or resets the fixed operator account from ADMIN_EMAIL,
// ADMIN_PASSWORD and ADMIN_NAME.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Falha ao conectar no banco: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("Falha ao executar migrações: %v", err)
	}

	hash, err := utils.HashPassword(cfg.Admin.Password)
	if err != nil {
		log.Fatalf("Falha ao gerar hash da senha: %v", err)
	}

	userRepo := repository.NewUserRepository(pool)
	user, err := userRepo.Upsert(ctx, utils.NormalizeEmail(cfg.Admin.Email), hash, cfg.Admin.Name)
	if err != nil {
		log.Fatalf("Falha ao criar usuário administrador: %v", err)
	}

	log.Printf("Usuário administrador pronto: %s (%s)", user.Email, user.ID)
}
