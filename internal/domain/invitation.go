package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvitationStatus represents the lifecycle state of an invitation.
// Expiry is not a status: it is computed from ExpiresAt at read time.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// WorkspaceInvitation represents a pending or accepted invitation to
// join a workspace. The raw secret is never stored; TokenHash is its
// only persisted representation.
type WorkspaceInvitation struct {
	ID          uuid.UUID        `json:"id"`
	WorkspaceID uuid.UUID        `json:"workspace_id"`
	Email       string           `json:"email"`
	TokenHash   string           `json:"-"`
	Role        string           `json:"role"`
	InvitedByID uuid.UUID        `json:"invited_by_id"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// IsExpired reports whether the invitation has passed its expiry time
func (i *WorkspaceInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// InvitationCreate represents an invitation creation request
type InvitationCreate struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role,omitempty" validate:"omitempty,oneof=admin member viewer"`
}

// InvitationAccept represents a token redemption request
type InvitationAccept struct {
	Token string `json:"token" validate:"required"`
}

// InvitationStore handles invitation persistence.
// ListRedeemable returns every invitation regardless of status:
// redemption must stay idempotent for already-accepted tokens, so the
// acceptance scan cannot be limited to pending rows. Expiry is the
// caller's check.
type InvitationStore interface {
	Create(ctx context.Context, invitation *WorkspaceInvitation) error
	ListRedeemable(ctx context.Context) ([]WorkspaceInvitation, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]WorkspaceInvitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status InvitationStatus) error
}
