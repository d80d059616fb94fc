package models

import (
	"time"

	"github.com/google/uuid"
)

// Metrics é o agregado retornado por GET /api/dashboard/metrics.
type Metrics struct {
	TotalAircraft int `json:"totalAircraft"`
	AvgCompletion int `json:"avgCompletion"`
	Efficiency    int `json:"efficiency"`
	Alerts        int `json:"alerts"`
}

// DashboardSnapshot é um registro histórico dos agregados do dashboard.
type DashboardSnapshot struct {
	ID            uuid.UUID `json:"id"`
	Date          time.Time `json:"date"`
	TotalProjects int       `json:"totalProjects"`
	AvgCompletion int       `json:"avgCompletion"`
	AvgEfficiency int       `json:"avgEfficiency"`
	TotalAlerts   int       `json:"totalAlerts"`
}

// ChartPoint é um ponto da série de progresso por aeronave.
type ChartPoint struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
}
