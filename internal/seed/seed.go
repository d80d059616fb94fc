package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlosintrieri/AV3/internal/production"
	"github.com/carlosintrieri/AV3/internal/utils"
)

// Seeder populates the demo fixtures. Both entry points are idempotent:
// they no-op when data already exists.
type Seeder struct {
	pool *pgxpool.Pool
}

func NewSeeder(pool *pgxpool.Pool) *Seeder {
	return &Seeder{pool: pool}
}

type demoAircraft struct {
	Name         string
	Model        string
	Deadline     string
	Progress     int
	Efficiency   int
	CurrentStage int
	CanEdit      bool
}

var demoAircraftList = []demoAircraft{
	{Name: "Boeing 737 MAX", Model: "Boeing 737 MAX", Deadline: "2025-03-15", Progress: 40, Efficiency: 85, CurrentStage: 2, CanEdit: true},
	{Name: "Embraer E195", Model: "Embraer E195", Deadline: "2025-04-20"},
	{Name: "Cessna Citation", Model: "Cessna Citation X", Deadline: "2025-05-10"},
	{Name: "Airbus A320", Model: "Airbus A320neo", Deadline: "2025-06-05"},
	{Name: "Gulfstream G650", Model: "Gulfstream G650ER", Deadline: "2025-07-12"},
	{Name: "Bombardier Global", Model: "Bombardier Global 7500", Deadline: "2025-08-18"},
}

type demoResource struct {
	Name        string
	Type        string
	Quantity    int
	Unit        string
	Location    string
	Description string
}

var demoResourceList = []demoResource{
	{"Chapas de Alumínio", "Material", 500, "kg", "Galpão A", "Chapas de alumínio aeronáutico liga 7075"},
	{"Motores Turbo-Fan", "Componente", 12, "unidade", "Estoque de Motores", "Motores de última geração para aeronaves comerciais"},
	{"Sistemas de Aviônica", "Componente", 8, "conjunto", "Sala Limpa B", "Sistemas completos de aviônica digital"},
	{"Rebites Aeronáuticos", "Material", 50000, "unidade", "Galpão A", "Rebites especiais para montagem de fuselagem"},
	{"Trens de Pouso", "Componente", 6, "conjunto", "Estoque de Componentes", "Trens de pouso hidráulicos retráteis"},
	{"Tintas Aeroespaciais", "Material", 300, "litro", "Galpão C", "Tintas especiais resistentes a alta altitude"},
}

// SeedProjects creates the six demo aircraft with their stages and creation
// activities. It reports (count, true) when data was created and the
// existing count with false when the database was already populated.
func (s *Seeder) SeedProjects(ctx context.Context) (int, bool, error) {
	var existing int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&existing); err != nil {
		return 0, false, fmt.Errorf("failed to count projects: %w", err)
	}
	if existing > 0 {
		return existing, false, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, a := range demoAircraftList {
		deadline, err := time.Parse("2006-01-02", a.Deadline)
		if err != nil {
			return 0, false, fmt.Errorf("invalid demo deadline %q: %w", a.Deadline, err)
		}

		var projectID string
		err = tx.QueryRow(ctx, `
			INSERT INTO projects (name, model, deadline, progress, efficiency, alerts, image, queue_position, can_edit, current_stage)
			VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)
			RETURNING id
		`, a.Name, a.Model, deadline, a.Progress, a.Efficiency, utils.AircraftImageAt(i), i+1, a.CanEdit, a.CurrentStage).Scan(&projectID)
		if err != nil {
			return 0, false, fmt.Errorf("failed to seed project %s: %w", a.Name, err)
		}

		for order, stageName := range production.StageNames {
			completed := order < a.CurrentStage
			var completedAt *time.Time
			if completed {
				now := time.Now()
				completedAt = &now
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO stages (project_id, name, stage_order, completed, completed_at)
				VALUES ($1, $2, $3, $4, $5)
			`, projectID, stageName, order, completed, completedAt); err != nil {
				return 0, false, fmt.Errorf("failed to seed stage %s: %w", stageName, err)
			}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO activities (project_id, description, type)
			VALUES ($1, $2, 'progress')
		`, projectID, fmt.Sprintf("Aeronave %s adicionada ao sistema", a.Name)); err != nil {
			return 0, false, fmt.Errorf("failed to seed activity for %s: %w", a.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("failed to commit seed: %w", err)
	}

	return len(demoAircraftList), true, nil
}

// SeedResources creates the default warehouse resources when none exist.
func (s *Seeder) SeedResources(ctx context.Context) (int, bool, error) {
	var existing int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resources`).Scan(&existing); err != nil {
		return 0, false, fmt.Errorf("failed to count resources: %w", err)
	}
	if existing > 0 {
		return existing, false, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range demoResourceList {
		if _, err := tx.Exec(ctx, `
			INSERT INTO resources (name, type, quantity, unit, status, location, description)
			VALUES ($1, $2, $3, $4, 'available', $5, $6)
		`, r.Name, r.Type, r.Quantity, r.Unit, r.Location, r.Description); err != nil {
			return 0, false, fmt.Errorf("failed to seed resource %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("failed to commit seed: %w", err)
	}

	return len(demoResourceList), true, nil
}
