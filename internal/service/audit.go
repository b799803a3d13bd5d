package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// AuditTrail records workspace-scoped actions. Every mutating
// operation in the membership core writes exactly one entry through
// it.
type AuditTrail struct {
	store domain.AuditStore
}

// NewAuditTrail creates a new audit trail writer
func NewAuditTrail(store domain.AuditStore) *AuditTrail {
	return &AuditTrail{store: store}
}

// Record appends a single audit entry
func (a *AuditTrail) Record(ctx context.Context, workspaceID uuid.UUID, action domain.AuditAction, actorID uuid.UUID, payload map[string]any) error {
	entry := &domain.AuditLogEntry{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Action:      action,
		ActorID:     actorID,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}

	if err := a.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	log.Debug().
		Str("workspace_id", workspaceID.String()).
		Str("action", string(action)).
		Msg("Audit entry recorded")

	return nil
}
