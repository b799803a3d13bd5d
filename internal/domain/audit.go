package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditAction enumerates the workspace-scoped actions recorded in the
// audit log
type AuditAction string

const (
	AuditWorkspaceArchived  AuditAction = "WORKSPACE_ARCHIVED"
	AuditWorkspaceRestored  AuditAction = "WORKSPACE_RESTORED"
	AuditWorkspaceDeleted   AuditAction = "WORKSPACE_DELETED"
	AuditMemberAdded        AuditAction = "MEMBER_ADDED"
	AuditMemberRemoved      AuditAction = "MEMBER_REMOVED"
	AuditInvitationCreated  AuditAction = "INVITATION_CREATED"
	AuditInvitationAccepted AuditAction = "INVITATION_ACCEPTED"
)

// AuditLogEntry is an immutable record of a workspace-scoped state
// change. Entries are only ever appended.
type AuditLogEntry struct {
	ID          uuid.UUID      `json:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	Action      AuditAction    `json:"action"`
	ActorID     uuid.UUID      `json:"actor_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AuditStore is an append-only log writer
type AuditStore interface {
	Append(ctx context.Context, entry *AuditLogEntry) error
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]AuditLogEntry, error)
}
