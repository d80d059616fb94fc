package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carlosintrieri/AV3/internal/cache"
	"github.com/carlosintrieri/AV3/internal/config"
	"github.com/carlosintrieri/AV3/internal/database"
	"github.com/carlosintrieri/AV3/internal/handlers"
	"github.com/carlosintrieri/AV3/internal/middleware"
	"github.com/carlosintrieri/AV3/internal/repository"
	"github.com/carlosintrieri/AV3/internal/seed"
	"github.com/carlosintrieri/AV3/internal/services"
	"github.com/carlosintrieri/AV3/internal/storage"
	"github.com/carlosintrieri/AV3/internal/utils"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	pool, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Falha ao conectar no banco: %v", err)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("Falha ao executar migrações: %v", err)
	}

	// Redis is a best-effort cache: without it the dashboard just hits
	// Postgres on every poll.
	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Redis indisponível, seguindo sem cache: %v", err)
		redisClient = nil
	}

	driver, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Falha ao configurar armazenamento: %v", err)
	}

	projectRepo := repository.NewProjectRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	uploadService := services.NewUploadService(projectRepo, driver)

	cacheTTL := time.Duration(cfg.Snapshot.CacheTTLSeconds) * time.Second

	projectHandler := handlers.NewProjectHandler(projectRepo, activityRepo, uploadService, redisClient, utils.RandomAircraftImage)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	resourceHandler := handlers.NewResourceHandler(resourceRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardRepo, redisClient, cacheTTL, cfg.Snapshot.RetentionDays)
	authHandler := handlers.NewAuthHandler(userRepo)
	seedHandler := handlers.NewSeedHandler(seed.NewSeeder(pool))

	router := setupRouter(cfg, projectHandler, activityHandler, resourceHandler, dashboardHandler, authHandler, seedHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Servidor rodando na porta %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Falha ao iniciar servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Encerramento forçado: %v", err)
	}

	pool.Close()
	if err := redisClient.Close(); err != nil {
		log.Printf("Erro ao fechar Redis: %v", err)
	}

	log.Println("Servidor encerrado")
}

func setupRouter(
	cfg *config.Config,
	projects *handlers.ProjectHandler,
	activities *handlers.ActivityHandler,
	resources *handlers.ResourceHandler,
	dashboard *handlers.DashboardHandler,
	auth *handlers.AuthHandler,
	seeds *handlers.SeedHandler,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	// Uploaded photos are served straight from disk under the local driver.
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		router.Static("/uploads", cfg.Storage.UploadsPath)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API AeroCode funcionando"})
		})

		api.POST("/auth/login", auth.Login)

		api.GET("/projects", projects.List)
		api.GET("/projects/:id", projects.GetByID)
		api.POST("/projects", projects.Create)
		api.PUT("/projects/:id", projects.Update)
		api.PUT("/projects/:id/advance", projects.Advance)
		api.PUT("/projects/:id/complete", projects.Complete)
		api.DELETE("/projects/:id", projects.Delete)
		api.POST("/projects/:id/image", projects.UploadImage)
		api.POST("/projects/seed-initial", seeds.Projects)

		api.GET("/dashboard/metrics", dashboard.Metrics)
		api.GET("/dashboard/chart", dashboard.Chart)
		api.POST("/dashboard/snapshot", dashboard.Snapshot)
		api.GET("/dashboard/history", dashboard.History)
		api.GET("/dashboard/latest", dashboard.Latest)
		api.DELETE("/dashboard/clean-old", dashboard.CleanOld)

		api.GET("/activities", activities.Recent)
		api.GET("/activities/project/:projectId", activities.ByProject)

		api.GET("/resources", resources.List)
		api.GET("/resources/:id", resources.GetByID)
		api.POST("/resources", resources.Create)
		api.PUT("/resources/:id", resources.Update)
		api.DELETE("/resources/:id", resources.Delete)
		api.POST("/resources/seed", seeds.Resources)
	}

	return router
}
