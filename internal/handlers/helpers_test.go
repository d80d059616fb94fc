package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carlosintrieri/AV3/internal/models"
	"github.com/carlosintrieri/AV3/internal/production"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fakeProjectStore is an in-memory ProjectStore with the same queue rules as
// the SQL repository: one editable non-complete project at a time, released
// in queue order.
type fakeProjectStore struct {
	projects map[uuid.UUID]*models.Project
	nextPos  int

	listErr error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[uuid.UUID]*models.Project), nextPos: 1}
}

func (f *fakeProjectStore) ordered() []*models.Project {
	out := make([]*models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QueuePosition < out[j].QueuePosition })
	return out
}

func (f *fakeProjectStore) List(ctx context.Context) ([]models.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Project{}
	for _, p := range f.ordered() {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, production.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProjectStore) Create(ctx context.Context, req *models.CreateProjectRequest, deadline time.Time, image string) (*models.Project, error) {
	canEdit := true
	for _, p := range f.projects {
		if p.CanEdit && p.Progress < 100 {
			canEdit = false
			break
		}
	}

	p := &models.Project{
		ID:            uuid.New(),
		Name:          req.Name,
		Model:         req.Model,
		Deadline:      deadline,
		Efficiency:    req.Efficiency,
		Alerts:        req.Alerts,
		Image:         &image,
		QueuePosition: f.nextPos,
		CanEdit:       canEdit,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	for i, name := range production.StageNames {
		p.Stages = append(p.Stages, models.Stage{
			ID:        uuid.New(),
			ProjectID: p.ID,
			Name:      name,
			Order:     i,
		})
	}
	f.nextPos++
	f.projects[p.ID] = p
	return f.GetByID(ctx, p.ID)
}

func (f *fakeProjectStore) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProjectRequest, deadline *time.Time) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, production.ErrProjectNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Model != nil {
		p.Model = *req.Model
	}
	if deadline != nil {
		p.Deadline = *deadline
	}
	if req.Efficiency != nil {
		p.Efficiency = *req.Efficiency
	}
	if req.Alerts != nil {
		p.Alerts = *req.Alerts
	}
	p.UpdatedAt = time.Now()
	return f.GetByID(ctx, id)
}

func (f *fakeProjectStore) state(p *models.Project) production.State {
	done := 0
	for _, s := range p.Stages {
		if s.Completed {
			done++
		}
	}
	return production.State{Name: p.Name, CurrentStage: p.CurrentStage, CanEdit: p.CanEdit, StagesDone: done}
}

func (f *fakeProjectStore) apply(p *models.Project, tr production.Transition) {
	if tr.StageToComplete >= 0 {
		now := time.Now()
		p.Stages[tr.StageToComplete].Completed = true
		p.Stages[tr.StageToComplete].CompletedAt = &now
	}
	p.CurrentStage = tr.NextStage
	p.Progress = tr.Progress
	p.UpdatedAt = time.Now()
	if tr.Finished {
		p.CanEdit = false
		f.releaseNext(p.ID)
	}
}

func (f *fakeProjectStore) releaseNext(exclude uuid.UUID) {
	for _, candidate := range f.ordered() {
		if candidate.ID == exclude || candidate.CanEdit || candidate.Progress >= 100 {
			continue
		}
		candidate.CanEdit = true
		return
	}
}

func (f *fakeProjectStore) AdvanceStage(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, production.ErrProjectNotFound
	}
	tr, err := production.Advance(f.state(p))
	if err != nil {
		return nil, err
	}
	f.apply(p, tr)
	return f.GetByID(ctx, id)
}

func (f *fakeProjectStore) Complete(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, production.ErrProjectNotFound
	}
	tr, err := production.Complete(f.state(p))
	if err != nil {
		return nil, err
	}
	f.apply(p, tr)
	return f.GetByID(ctx, id)
}

func (f *fakeProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	p, ok := f.projects[id]
	if !ok {
		return production.ErrProjectNotFound
	}
	wasEditable := p.CanEdit && p.Progress < 100
	delete(f.projects, id)
	if wasEditable {
		f.releaseNext(id)
	}
	return nil
}

type fakeActivityStore struct {
	recent    []models.Activity
	byProject map[uuid.UUID][]models.Activity

	err error
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{byProject: make(map[uuid.UUID][]models.Activity)}
}

func (f *fakeActivityStore) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeActivityStore) ByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	list := f.byProject[projectID]
	if limit > 0 && limit < len(list) {
		return list[:limit], nil
	}
	return list, nil
}

func newProjectRouter(projects ProjectStore, activities ActivityStore) *gin.Engine {
	h := NewProjectHandler(projects, activities, nil, nil, func() string { return "https://img.test/aircraft.jpg" })

	router := gin.New()
	router.GET("/api/projects", h.List)
	router.GET("/api/projects/:id", h.GetByID)
	router.POST("/api/projects", h.Create)
	router.PUT("/api/projects/:id", h.Update)
	router.PUT("/api/projects/:id/advance", h.Advance)
	router.PUT("/api/projects/:id/complete", h.Complete)
	router.DELETE("/api/projects/:id", h.Delete)
	return router
}
