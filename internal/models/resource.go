package models

import (
	"time"

	"github.com/google/uuid"
)

// Resource types as the frontend sends them.
const (
	ResourceMaterial  = "Material"
	ResourceSupplier  = "Fornecedor"
	ResourceTeam      = "Equipe"
	ResourceEquipment = "Equipamento"
)

// Resource representa um recurso de produção (material, fornecedor, equipe
// ou equipamento). Campos opcionais dependem do tipo.
type Resource struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Quantity    *int       `json:"quantity,omitempty"`
	Unit        *string    `json:"unit,omitempty"`
	Status      string     `json:"status"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	Contact     *string    `json:"contact,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Role        *string    `json:"role,omitempty"`
	Projects    *int       `json:"projects,omitempty"`
	Maintenance *time.Time `json:"maintenance,omitempty"`
	Usage       *int       `json:"usage,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateResourceRequest para criação de recurso
type CreateResourceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Quantity    *int    `json:"quantity,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Status      *string `json:"status,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Role        *string `json:"role,omitempty"`
	Projects    *int    `json:"projects,omitempty"`
	Maintenance *string `json:"maintenance,omitempty"`
	Usage       *int    `json:"usage,omitempty"`
}

// UpdateResourceRequest aplica patch parcial: campos omitidos ficam como
// estão, null explícito limpa o campo.
type UpdateResourceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Quantity    Optional[int]    `json:"quantity"`
	Unit        Optional[string] `json:"unit"`
	Location    Optional[string] `json:"location"`
	Description Optional[string] `json:"description"`
	Contact     Optional[string] `json:"contact"`
	Rating      Optional[int]    `json:"rating"`
	Role        Optional[string] `json:"role"`
	Projects    Optional[int]    `json:"projects"`
	Maintenance Optional[string] `json:"maintenance"`
	Usage       Optional[int]    `json:"usage"`
}
