package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carlosintrieri/AV3/internal/cache"
	"github.com/carlosintrieri/AV3/internal/models"
)

// DashboardStore aggregates project metrics and manages snapshot history.
type DashboardStore interface {
	ComputeMetrics(ctx context.Context) (*models.Metrics, error)
	SaveSnapshot(ctx context.Context, m *models.Metrics) (*models.DashboardSnapshot, error)
	History(ctx context.Context, days int) ([]models.DashboardSnapshot, error)
	Latest(ctx context.Context) (*models.DashboardSnapshot, error)
	Prune(ctx context.Context, retentionDays int) (int64, error)
	ChartSeries(ctx context.Context) ([]models.ChartPoint, error)
}

type DashboardHandler struct {
	dashboard     DashboardStore
	cache         *cache.Client
	cacheTTL      time.Duration
	retentionDays int
}

func NewDashboardHandler(dashboard DashboardStore, cacheClient *cache.Client, cacheTTL time.Duration, retentionDays int) *DashboardHandler {
	return &DashboardHandler{
		dashboard:     dashboard,
		cache:         cacheClient,
		cacheTTL:      cacheTTL,
		retentionDays: retentionDays,
	}
}

// Metrics returns the live dashboard aggregates, or an all-zero body when
// storage fails. A fresh snapshot is saved as a side effect so history
// accumulates even without the worker running.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.GetMetrics(ctx); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	} else if !cache.IsMiss(err) {
		log.Printf("Erro ao ler cache de métricas (não crítico): %v", err)
	}

	metrics, err := h.dashboard.ComputeMetrics(ctx)
	if err != nil {
		log.Printf("Erro ao buscar métricas: %v", err)
		c.JSON(http.StatusOK, models.Metrics{})
		return
	}

	if _, err := h.dashboard.SaveSnapshot(ctx, metrics); err != nil {
		log.Printf("Erro ao salvar snapshot (não crítico): %v", err)
	}
	h.cacheJSON(ctx, metrics, h.cache.SetMetrics)

	c.JSON(http.StatusOK, metrics)
}

// Chart returns one (name, progress) point per project for the line chart.
// Degrades to an empty series on storage failure.
func (h *DashboardHandler) Chart(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.GetChart(ctx); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	} else if !cache.IsMiss(err) {
		log.Printf("Erro ao ler cache do gráfico (não crítico): %v", err)
	}

	points, err := h.dashboard.ChartSeries(ctx)
	if err != nil {
		log.Printf("Erro ao buscar dados do gráfico: %v", err)
		c.JSON(http.StatusOK, []models.ChartPoint{})
		return
	}
	h.cacheJSON(ctx, points, h.cache.SetChart)

	c.JSON(http.StatusOK, points)
}

// Snapshot computes and persists the current aggregates on demand.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()

	metrics, err := h.dashboard.ComputeMetrics(ctx)
	if err != nil {
		respondError(c, err, "Erro ao calcular métricas")
		return
	}

	snapshot, err := h.dashboard.SaveSnapshot(ctx, metrics)
	if err != nil {
		respondError(c, err, "Erro ao salvar snapshot")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Snapshot salvo com sucesso", "snapshot": snapshot})
}

// History returns snapshots within the last N days (default 30), oldest
// first.
func (h *DashboardHandler) History(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	snapshots, err := h.dashboard.History(c.Request.Context(), days)
	if err != nil {
		log.Printf("Erro ao buscar histórico: %v", err)
		c.JSON(http.StatusOK, []models.DashboardSnapshot{})
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// Latest returns the most recent snapshot, 404 when none exists yet.
func (h *DashboardHandler) Latest(c *gin.Context) {
	snapshot, err := h.dashboard.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err, "Nenhum snapshot encontrado")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// CleanOld prunes snapshots past the retention window. The days query
// parameter overrides the configured retention.
func (h *DashboardHandler) CleanOld(c *gin.Context) {
	days := h.retentionDays
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	deleted, err := h.dashboard.Prune(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, "Erro ao limpar snapshots antigos")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Snapshots antigos removidos", "deleted": deleted})
}

func (h *DashboardHandler) cacheJSON(ctx context.Context, v any, set func(context.Context, string, time.Duration) error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := set(ctx, string(payload), h.cacheTTL); err != nil {
		log.Printf("Erro ao gravar cache do dashboard (não crítico): %v", err)
	}
}
