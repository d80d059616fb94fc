package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlosintrieri/AV3/internal/models"
	"github.com/carlosintrieri/AV3/internal/production"
)

const projectColumns = `id, name, model, deadline, progress, efficiency, alerts, image,
	queue_position, can_edit, current_stage, created_at, updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

type projectRow interface {
	Scan(dest ...any) error
}

func scanProject(row projectRow) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Model,
		&p.Deadline,
		&p.Progress,
		&p.Efficiency,
		&p.Alerts,
		&p.Image,
		&p.QueuePosition,
		&p.CanEdit,
		&p.CurrentStage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Count returns the number of projects, used by the idempotent seed.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// List returns all projects with their stages, ordered by queue position.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY queue_position ASC`, projectColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	for i := range projects {
		stages, err := r.loadStages(ctx, r.pool, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Stages = stages
	}

	return projects, nil
}

// GetByID returns a project with its ordered stages.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)

	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, production.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	p.Stages, err = r.loadStages(ctx, r.pool, p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Create inserts the project, its five stage rows and the creation activity
// in one transaction. The new project is editable only when no other project
// currently holds the flag.
func (r *ProjectRepository) Create(ctx context.Context, req *models.CreateProjectRequest, deadline time.Time, image string) (*models.Project, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxQueue int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(queue_position), 0) FROM projects`).Scan(&maxQueue); err != nil {
		return nil, fmt.Errorf("failed to read queue position: %w", err)
	}

	var editableExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE can_edit = true)`).Scan(&editableExists); err != nil {
		return nil, fmt.Errorf("failed to check editable project: %w", err)
	}
	canEdit := !editableExists

	insertQuery := fmt.Sprintf(`
		INSERT INTO projects (name, model, deadline, progress, efficiency, alerts, image, queue_position, can_edit, current_stage)
		VALUES ($1, $2, $3, 0, $4, $5, $6, $7, $8, 0)
		RETURNING %s
	`, projectColumns)

	p, err := scanProject(tx.QueryRow(ctx, insertQuery,
		req.Name,
		req.Model,
		deadline,
		req.Efficiency,
		req.Alerts,
		image,
		maxQueue+1,
		canEdit,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	for i, stageName := range production.StageNames {
		var stage models.Stage
		err := tx.QueryRow(ctx, `
			INSERT INTO stages (project_id, name, stage_order, completed)
			VALUES ($1, $2, $3, false)
			RETURNING id, project_id, name, stage_order, completed, completed_at
		`, p.ID, stageName, i).Scan(
			&stage.ID, &stage.ProjectID, &stage.Name, &stage.Order, &stage.Completed, &stage.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create stage %q: %w", stageName, err)
		}
		p.Stages = append(p.Stages, stage)
	}

	description, activityType := production.CreationActivity(p.Name, canEdit)
	if _, err := tx.Exec(ctx, `
		INSERT INTO activities (project_id, description, type) VALUES ($1, $2, $3)
	`, p.ID, description, activityType); err != nil {
		return nil, fmt.Errorf("failed to record creation activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return p, nil
}

// Update patches the mutable descriptive fields of a project.
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProjectRequest, deadline *time.Time) (*models.Project, error) {
	query := "UPDATE projects SET updated_at = NOW()"
	args := []any{}
	argIndex := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIndex)
		args = append(args, *req.Name)
		argIndex++
	}
	if req.Model != nil {
		query += fmt.Sprintf(", model = $%d", argIndex)
		args = append(args, *req.Model)
		argIndex++
	}
	if deadline != nil {
		query += fmt.Sprintf(", deadline = $%d", argIndex)
		args = append(args, *deadline)
		argIndex++
	}
	if req.Efficiency != nil {
		query += fmt.Sprintf(", efficiency = $%d", argIndex)
		args = append(args, *req.Efficiency)
		argIndex++
	}
	if req.Alerts != nil {
		query += fmt.Sprintf(", alerts = $%d", argIndex)
		args = append(args, *req.Alerts)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argIndex, projectColumns)
	args = append(args, id)

	p, err := scanProject(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, production.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	p.Stages, err = r.loadStages(ctx, r.pool, p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetImage updates the project image reference.
func (r *ProjectRepository) SetImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET image = $2, updated_at = NOW() WHERE id = $1`, id, imageURL)
	if err != nil {
		return fmt.Errorf("failed to set project image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return production.ErrProjectNotFound
	}
	return nil
}

// AdvanceStage completes the project's current stage and, when that was the
// last one, releases the next queued project. The whole transition runs in a
// single transaction with the acting row locked so the queue can never hold
// two editable projects.
func (r *ProjectRepository) AdvanceStage(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	state, err := lockProjectState(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	transition, err := production.Advance(*state)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE stages SET completed = true, completed_at = NOW()
		WHERE project_id = $1 AND stage_order = $2
	`, id, transition.StageToComplete); err != nil {
		return nil, fmt.Errorf("failed to complete stage: %w", err)
	}

	if err := applyTransition(ctx, tx, id, transition); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Complete is the explicit completion entry point: every stage row must
// already be marked completed.
func (r *ProjectRepository) Complete(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	state, err := lockProjectState(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	transition, err := production.Complete(*state)
	if err != nil {
		return nil, err
	}

	if err := applyTransition(ctx, tx, id, transition); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the project; stages and activities cascade. When the
// deleted project held the edit flag the next queued project is released in
// the same transaction, so deleting the active aircraft never stalls the
// queue.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var wasEditable bool
	err = tx.QueryRow(ctx, `SELECT can_edit FROM projects WHERE id = $1 FOR UPDATE`, id).Scan(&wasEditable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return production.ErrProjectNotFound
		}
		return fmt.Errorf("failed to lock project: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if wasEditable {
		if err := releaseNext(ctx, tx, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// lockProjectState reads the queue-relevant fields under FOR UPDATE.
func lockProjectState(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*production.State, error) {
	state := &production.State{}
	err := tx.QueryRow(ctx, `
		SELECT p.name, p.current_stage, p.can_edit,
			(SELECT COUNT(*) FROM stages s WHERE s.project_id = p.id AND s.completed) AS stages_done
		FROM projects p
		WHERE p.id = $1
		FOR UPDATE OF p
	`, id).Scan(&state.Name, &state.CurrentStage, &state.CanEdit, &state.StagesDone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, production.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}
	return state, nil
}

// applyTransition writes the project update, the audit entry and, for a
// finishing transition, the queue release.
func applyTransition(ctx context.Context, tx pgx.Tx, id uuid.UUID, t production.Transition) error {
	query := `UPDATE projects SET current_stage = $2, progress = $3, updated_at = NOW() WHERE id = $1`
	if t.Finished {
		query = `UPDATE projects SET current_stage = $2, progress = $3, can_edit = false, updated_at = NOW() WHERE id = $1`
	}
	if _, err := tx.Exec(ctx, query, id, t.NextStage, t.Progress); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO activities (project_id, description, type) VALUES ($1, $2, 'success')
	`, id, t.Activity); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	if t.Finished {
		return releaseNext(ctx, tx, id)
	}
	return nil
}

// releaseNext flips can_edit on the lowest-queue-position waiting project,
// if any. The candidate row is locked so two finishing projects cannot
// release two different aircraft.
func releaseNext(ctx context.Context, tx pgx.Tx, excludeID uuid.UUID) error {
	var nextID uuid.UUID
	var nextName string
	err := tx.QueryRow(ctx, `
		SELECT id, name FROM projects
		WHERE can_edit = false AND progress < 100 AND id <> $1
		ORDER BY queue_position ASC
		LIMIT 1
		FOR UPDATE
	`, excludeID).Scan(&nextID, &nextName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to find next queued project: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE projects SET can_edit = true, updated_at = NOW() WHERE id = $1`, nextID); err != nil {
		return fmt.Errorf("failed to release next project: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO activities (project_id, description, type) VALUES ($1, $2, 'progress')
	`, nextID, production.ReleaseActivity(nextName)); err != nil {
		return fmt.Errorf("failed to record release activity: %w", err)
	}

	return nil
}

func (r *ProjectRepository) loadStages(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, projectID uuid.UUID) ([]models.Stage, error) {
	rows, err := q.Query(ctx, `
		SELECT id, project_id, name, stage_order, completed, completed_at
		FROM stages
		WHERE project_id = $1
		ORDER BY stage_order ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stages: %w", err)
	}
	defer rows.Close()

	stages := []models.Stage{}
	for rows.Next() {
		var s models.Stage
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Order, &s.Completed, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stages: %w", err)
	}

	return stages, nil
}
