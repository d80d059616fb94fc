package models

import (
	"time"

	"github.com/google/uuid"
)

// Project representa uma aeronave na fila de produção.
// JSON keys are camelCase to match the frontend contract.
type Project struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Model         string     `json:"model"`
	Deadline      time.Time  `json:"deadline"`
	Progress      int        `json:"progress"`
	Efficiency    int        `json:"efficiency"`
	Alerts        int        `json:"alerts"`
	Image         *string    `json:"image,omitempty"`
	QueuePosition int        `json:"queuePosition"`
	CanEdit       bool       `json:"canEdit"`
	CurrentStage  int        `json:"currentStage"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Stages        []Stage    `json:"stages,omitempty"`
	Activities    []Activity `json:"activities,omitempty"`
}

// Stage é uma das 5 etapas fixas de montagem de um projeto.
type Stage struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"projectId"`
	Name        string     `json:"name"`
	Order       int        `json:"order"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateProjectRequest para criação de projeto
type CreateProjectRequest struct {
	Name       string `json:"name" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Deadline   string `json:"deadline" binding:"required"`
	Efficiency int    `json:"efficiency"`
	Alerts     int    `json:"alerts"`
}

// UpdateProjectRequest para atualização parcial de projeto
type UpdateProjectRequest struct {
	Name       *string `json:"name,omitempty"`
	Model      *string `json:"model,omitempty"`
	Deadline   *string `json:"deadline,omitempty"`
	Efficiency *int    `json:"efficiency,omitempty"`
	Alerts     *int    `json:"alerts,omitempty"`
}
