package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity types recorded in the audit log.
const (
	ActivityProgress = "progress"
	ActivityAlert    = "alert"
	ActivitySuccess  = "success"
)

// Activity é um registro imutável do log de auditoria de um projeto.
type Activity struct {
	ID          uuid.UUID        `json:"id"`
	ProjectID   uuid.UUID        `json:"projectId"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	CreatedAt   time.Time        `json:"createdAt"`
	Project     *ActivityProject `json:"project,omitempty"`
}

// ActivityProject carries the owning project's display fields on list reads.
type ActivityProject struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
