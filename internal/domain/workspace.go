package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workspace represents a tenant workspace
type Workspace struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Tier       string     `json:"tier"`
	IsArchived bool       `json:"is_archived"`
	IsDeleted  bool       `json:"-"`
	DeletedAt  *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// WorkspaceCreate represents workspace creation data
type WorkspaceCreate struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=64,lowercase"`
	Tier string `json:"tier,omitempty" validate:"omitempty,oneof=free pro enterprise"`
}

// WorkspaceUpdate represents workspace update data
type WorkspaceUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,max=64,lowercase"`
}

// Tier constants
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// WorkspaceStore handles workspace persistence.
// GetByID never returns soft-deleted workspaces.
type WorkspaceStore interface {
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Workspace, error)
	Update(ctx context.Context, id uuid.UUID, update *WorkspaceUpdate) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	SetDeleted(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
	SlugExists(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error)
}
