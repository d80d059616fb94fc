package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlosintrieri/AV3/internal/models"
)

type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// ComputeMetrics aggregates the dashboard numbers across all projects.
// Zero projects yields all-zero metrics, never a division by zero.
func (r *DashboardRepository) ComputeMetrics(ctx context.Context) (*models.Metrics, error) {
	var total, sumProgress, sumEfficiency, sumAlerts int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(progress), 0), COALESCE(SUM(efficiency), 0), COALESCE(SUM(alerts), 0)
		FROM projects
	`).Scan(&total, &sumProgress, &sumEfficiency, &sumAlerts)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate metrics: %w", err)
	}

	m := &models.Metrics{TotalAircraft: total, Alerts: sumAlerts}
	if total > 0 {
		m.AvgCompletion = int(math.Round(float64(sumProgress) / float64(total)))
		m.Efficiency = int(math.Round(float64(sumEfficiency) / float64(total)))
	}
	return m, nil
}

// SaveSnapshot persists the given aggregates as a snapshot row.
func (r *DashboardRepository) SaveSnapshot(ctx context.Context, m *models.Metrics) (*models.DashboardSnapshot, error) {
	s := &models.DashboardSnapshot{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO dashboard_snapshots (total_projects, avg_completion, avg_efficiency, total_alerts)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, total_projects, avg_completion, avg_efficiency, total_alerts
	`, m.TotalAircraft, m.AvgCompletion, m.Efficiency, m.Alerts).Scan(
		&s.ID, &s.Date, &s.TotalProjects, &s.AvgCompletion, &s.AvgEfficiency, &s.TotalAlerts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return s, nil
}

// History returns snapshots newer than now minus the given number of days,
// oldest first.
func (r *DashboardRepository) History(ctx context.Context, days int) ([]models.DashboardSnapshot, error) {
	startDate := time.Now().AddDate(0, 0, -days)

	rows, err := r.pool.Query(ctx, `
		SELECT id, date, total_projects, avg_completion, avg_efficiency, total_alerts
		FROM dashboard_snapshots
		WHERE date >= $1
		ORDER BY date ASC
	`, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.DashboardSnapshot{}
	for rows.Next() {
		var s models.DashboardSnapshot
		if err := rows.Scan(&s.ID, &s.Date, &s.TotalProjects, &s.AvgCompletion, &s.AvgEfficiency, &s.TotalAlerts); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// Latest returns the most recent snapshot.
func (r *DashboardRepository) Latest(ctx context.Context) (*models.DashboardSnapshot, error) {
	s := &models.DashboardSnapshot{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, date, total_projects, avg_completion, avg_efficiency, total_alerts
		FROM dashboard_snapshots
		ORDER BY date DESC
		LIMIT 1
	`).Scan(&s.ID, &s.Date, &s.TotalProjects, &s.AvgCompletion, &s.AvgEfficiency, &s.TotalAlerts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return s, nil
}

// Prune deletes snapshots older than the retention window and reports how
// many rows went away.
func (r *DashboardRepository) Prune(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	tag, err := r.pool.Exec(ctx, `DELETE FROM dashboard_snapshots WHERE date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// truncateName shortens a project name to max runes. Counting runes
// instead of bytes keeps accented names from being split mid-character.
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}

// ChartSeries returns (truncated name, progress) per project in creation
// order for the frontend line chart.
func (r *DashboardRepository) ChartSeries(ctx context.Context) ([]models.ChartPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, progress FROM projects ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart data: %w", err)
	}
	defer rows.Close()

	points := []models.ChartPoint{}
	for rows.Next() {
		var p models.ChartPoint
		if err := rows.Scan(&p.Name, &p.Progress); err != nil {
			return nil, fmt.Errorf("failed to scan chart point: %w", err)
		}
		p.Name = truncateName(p.Name, 15)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart data: %w", err)
	}

	return points, nil
}
