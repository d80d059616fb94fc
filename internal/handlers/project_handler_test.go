package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carlosintrieri/AV3/internal/models"
)

func createProject(t *testing.T, router *gin.Engine, name string) models.Project {
	t.Helper()
	w := performRequest(t, router, http.MethodPost, "/api/projects", gin.H{
		"name":     name,
		"model":    "Comercial",
		"deadline": "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody[models.Project](t, w)
}

func TestProjectCreate_FirstIsEditableSecondWaits(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")
	second := createProject(t, router, "Airbus A320neo")

	require.True(t, first.CanEdit)
	require.False(t, second.CanEdit)
	require.Equal(t, 1, first.QueuePosition)
	require.Equal(t, 2, second.QueuePosition)
	require.Len(t, first.Stages, 5)
	require.Equal(t, "Fuselagem", first.Stages[0].Name)
	require.NotNil(t, first.Image)
}

func TestProjectCreate_MissingFields(t *testing.T) {
	router := newProjectRouter(newFakeProjectStore(), newFakeActivityStore())

	w := performRequest(t, router, http.MethodPost, "/api/projects", gin.H{"name": "Sem modelo"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody[map[string]string](t, w)
	require.Equal(t, "Nome, modelo e prazo são obrigatórios", body["message"])
}

func TestProjectAdvance_FiveTimesCompletesAndReleasesNext(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")
	second := createProject(t, router, "Airbus A320neo")

	wantProgress := []int{20, 40, 60, 80, 100}
	var last models.Project
	for i := 0; i < 5; i++ {
		w := performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String()+"/advance", nil)
		require.Equal(t, http.StatusOK, w.Code)
		last = decodeBody[models.Project](t, w)
		require.Equal(t, wantProgress[i], last.Progress)
	}

	require.False(t, last.CanEdit)
	require.Equal(t, 5, last.CurrentStage)

	released, err := store.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.True(t, released.CanEdit)
}

func TestProjectAdvance_BlockedProjectIsForbiddenAndUnchanged(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	createProject(t, router, "Boeing 737 MAX")
	second := createProject(t, router, "Airbus A320neo")

	w := performRequest(t, router, http.MethodPut, "/api/projects/"+second.ID.String()+"/advance", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	after, err := store.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.Equal(t, 0, after.Progress)
	require.Equal(t, 0, after.CurrentStage)
	for _, s := range after.Stages {
		require.False(t, s.Completed)
	}
}

func TestProjectAdvance_CompletedProjectIsBadRequest(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")
	for i := 0; i < 5; i++ {
		performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String()+"/advance", nil)
	}

	w := performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String()+"/advance", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectComplete_RequiresAllStages(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")

	w := performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// After the first four stages complete is still premature; the fifth
	// advance finishes the aircraft on its own.
	for i := 0; i < 4; i++ {
		performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String()+"/advance", nil)
	}
	w = performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectDelete_EditableHandsQueueToNext(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")
	second := createProject(t, router, "Airbus A320neo")

	w := performRequest(t, router, http.MethodDelete, "/api/projects/"+first.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	released, err := store.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.True(t, released.CanEdit)
}

func TestProjectDelete_WaitingProjectKeepsQueueIntact(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")
	second := createProject(t, router, "Airbus A320neo")
	third := createProject(t, router, "Embraer E195-E2")

	w := performRequest(t, router, http.MethodDelete, "/api/projects/"+second.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	stillFirst, err := store.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.True(t, stillFirst.CanEdit)

	stillWaiting, err := store.GetByID(context.Background(), third.ID)
	require.NoError(t, err)
	require.False(t, stillWaiting.CanEdit)
}

func TestProjectGetByID_AttachesRecentActivities(t *testing.T) {
	store := newFakeProjectStore()
	activities := newFakeActivityStore()
	router := newProjectRouter(store, activities)

	first := createProject(t, router, "Boeing 737 MAX")
	activities.byProject[first.ID] = []models.Activity{
		{ID: uuid.New(), ProjectID: first.ID, Description: "Nova aeronave Boeing 737 MAX adicionada ao sistema", Type: models.ActivityProgress},
	}

	w := performRequest(t, router, http.MethodGet, "/api/projects/"+first.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	project := decodeBody[models.Project](t, w)
	require.Len(t, project.Activities, 1)
}

func TestProjectGetByID_UnknownID(t *testing.T) {
	router := newProjectRouter(newFakeProjectStore(), newFakeActivityStore())

	w := performRequest(t, router, http.MethodGet, "/api/projects/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, router, http.MethodGet, "/api/projects/nao-e-uuid", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectList_DegradesToEmptyOnStorageFailure(t *testing.T) {
	store := newFakeProjectStore()
	store.listErr = errors.New("connection refused")
	router := newProjectRouter(store, newFakeActivityStore())

	w := performRequest(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestProjectUpdate_PatchesOnlyGivenFields(t *testing.T) {
	store := newFakeProjectStore()
	router := newProjectRouter(store, newFakeActivityStore())

	first := createProject(t, router, "Boeing 737 MAX")

	w := performRequest(t, router, http.MethodPut, "/api/projects/"+first.ID.String(), gin.H{"efficiency": 92})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[models.Project](t, w)
	require.Equal(t, 92, updated.Efficiency)
	require.Equal(t, first.Name, updated.Name)
	require.Equal(t, first.Model, updated.Model)
}
