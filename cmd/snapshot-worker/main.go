package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlosintrieri/AV3/internal/config"
	"github.com/carlosintrieri/AV3/internal/database"
	"github.com/carlosintrieri/AV3/internal/repository"
)

// Worker que grava snapshots periódicos do dashboard e remove os antigos,
// mantendo o histórico mesmo sem ninguém abrindo o painel.
func main() {
	log.Println("Iniciando worker de snapshots do dashboard...")

	cfg := config.Load()

	pool, err := database.Connect(context.Background(), &cfg.Database)
	if err != nil {
		log.Fatalf("Falha ao conectar no banco: %v", err)
	}
	defer pool.Close()

	dashboardRepo := repository.NewDashboardRepository(pool)

	interval := time.Duration(cfg.Snapshot.IntervalMinutes) * time.Minute

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	stopChan := make(chan struct{})
	go run(dashboardRepo, interval, cfg.Snapshot.RetentionDays, stopChan)

	<-sigChan
	log.Println("Recebido sinal de interrupção. Encerrando worker...")
	close(stopChan)

	time.Sleep(time.Second)
	log.Println("Worker encerrado.")
}

func run(repo *repository.DashboardRepository, interval time.Duration, retentionDays int, stopChan chan struct{}) {
	// Primeiro snapshot imediato para não esperar um intervalo inteiro.
	takeSnapshot(repo, retentionDays)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopChan:
			log.Println("Parando captura de snapshots...")
			return
		case <-ticker.C:
			takeSnapshot(repo, retentionDays)
		}
	}
}

func takeSnapshot(repo *repository.DashboardRepository, retentionDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	metrics, err := repo.ComputeMetrics(ctx)
	if err != nil {
		log.Printf("Erro ao calcular métricas: %v", err)
		return
	}

	snapshot, err := repo.SaveSnapshot(ctx, metrics)
	if err != nil {
		log.Printf("Erro ao salvar snapshot: %v", err)
		return
	}
	log.Printf("Snapshot %s salvo: %d aeronaves, conclusão média %d%%",
		snapshot.ID, metrics.TotalAircraft, metrics.AvgCompletion)

	deleted, err := repo.Prune(ctx, retentionDays)
	if err != nil {
		log.Printf("Erro ao limpar snapshots antigos: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("%d snapshots antigos removidos", deleted)
	}
}
