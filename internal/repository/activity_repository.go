package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlosintrieri/AV3/internal/models"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Recent returns the newest activities across all projects, with the owning
// project's name attached.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.project_id, a.description, a.type, a.created_at, p.id, p.name
		FROM activities a
		JOIN projects p ON p.id = a.project_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		var p models.ActivityProject
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Description, &a.Type, &a.CreatedAt, &p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Project = &p
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}

// ByProject returns a project's audit log, newest first. A limit of 0 means
// no limit.
func (r *ActivityRepository) ByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Activity, error) {
	query := `
		SELECT id, project_id, description, type, created_at
		FROM activities
		WHERE project_id = $1
		ORDER BY created_at DESC
	`
	args := []any{projectID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Description, &a.Type, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}
