package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkspaceMember represents an explicit workspace membership row
type WorkspaceMember struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Membership is what read paths return: either an explicit row or the
// owner membership synthesized for workspaces that predate explicit
// owner rows. Implicit is true only for the synthesized variant.
type Membership struct {
	WorkspaceMember
	Implicit bool `json:"implicit,omitempty"`
}

// Role constants
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// ValidRole reports whether role is one of the assignable roles.
// Owner is excluded: ownership comes from Workspace.OwnerID, never
// from an add-member request.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// MemberAdd represents an add-member request
type MemberAdd struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role,omitempty" validate:"omitempty,oneof=admin member viewer"`
}

// MembershipStore handles membership persistence
type MembershipStore interface {
	Create(ctx context.Context, member *WorkspaceMember) error
	GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*WorkspaceMember, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]WorkspaceMember, error)
	Delete(ctx context.Context, workspaceID, userID uuid.UUID) error
}
