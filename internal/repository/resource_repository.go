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
)

const resourceColumns = `id, name, type, quantity, unit, status, location, description,
	contact, rating, role, projects, maintenance, usage, created_at, updated_at`

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func scanResource(row projectRow) (*models.Resource, error) {
	res := &models.Resource{}
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Type,
		&res.Quantity,
		&res.Unit,
		&res.Status,
		&res.Location,
		&res.Description,
		&res.Contact,
		&res.Rating,
		&res.Role,
		&res.Projects,
		&res.Maintenance,
		&res.Usage,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// List returns all resources, newest first.
func (r *ResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	query := fmt.Sprintf(`SELECT %s FROM resources ORDER BY created_at DESC`, resourceColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resources: %w", err)
	}

	return resources, nil
}

// GetByID returns a resource by id.
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	query := fmt.Sprintf(`SELECT %s FROM resources WHERE id = $1`, resourceColumns)

	res, err := scanResource(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return res, nil
}

// Create inserts a resource; only supplied optional fields are stored.
func (r *ResourceRepository) Create(ctx context.Context, req *models.CreateResourceRequest, maintenance *time.Time) (*models.Resource, error) {
	status := "available"
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	query := fmt.Sprintf(`
		INSERT INTO resources (name, type, quantity, unit, status, location, description,
			contact, rating, role, projects, maintenance, usage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, resourceColumns)

	res, err := scanResource(r.pool.QueryRow(ctx, query,
		req.Name,
		req.Type,
		req.Quantity,
		req.Unit,
		status,
		req.Location,
		req.Description,
		req.Contact,
		req.Rating,
		req.Role,
		req.Projects,
		maintenance,
		req.Usage,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Update applies a partial patch. Omitted fields stay untouched; an explicit
// null clears the column.
func (r *ResourceRepository) Update(ctx context.Context, id uuid.UUID, req *models.UpdateResourceRequest, maintenance *time.Time) (*models.Resource, error) {
	query := "UPDATE resources SET updated_at = NOW()"
	args := []any{}
	argIndex := 1

	set := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if req.Name != nil && *req.Name != "" {
		set("name", *req.Name)
	}
	if req.Type != nil && *req.Type != "" {
		set("type", *req.Type)
	}
	if req.Status != nil && *req.Status != "" {
		set("status", *req.Status)
	}
	if req.Quantity.Present {
		set("quantity", req.Quantity.Ptr())
	}
	if req.Unit.Present {
		set("unit", req.Unit.Ptr())
	}
	if req.Location.Present {
		set("location", req.Location.Ptr())
	}
	if req.Description.Present {
		set("description", req.Description.Ptr())
	}
	if req.Contact.Present {
		set("contact", req.Contact.Ptr())
	}
	if req.Rating.Present {
		set("rating", req.Rating.Ptr())
	}
	if req.Role.Present {
		set("role", req.Role.Ptr())
	}
	if req.Projects.Present {
		set("projects", req.Projects.Ptr())
	}
	if req.Maintenance.Present {
		set("maintenance", maintenance)
	}
	if req.Usage.Present {
		set("usage", req.Usage.Ptr())
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argIndex, resourceColumns)
	args = append(args, id)

	res, err := scanResource(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return res, nil
}

// Delete removes a resource.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of resources, used by the idempotent seed.
func (r *ResourceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return count, nil
}
