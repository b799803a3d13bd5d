package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
)

// LifecycleService owns the workspace archival and soft-deletion state
// machine. Only the workspace owner may change either flag; the two
// flags are independent.
type LifecycleService struct {
	workspaceStore domain.WorkspaceStore
	audit          *AuditTrail
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(workspaceStore domain.WorkspaceStore, audit *AuditTrail) *LifecycleService {
	return &LifecycleService{
		workspaceStore: workspaceStore,
		audit:          audit,
	}
}

// Archive marks a workspace as archived. Archiving an already-archived
// workspace is a no-op success.
func (s *LifecycleService) Archive(ctx context.Context, workspaceID, actorID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.loadOwned(ctx, workspaceID, actorID)
	if err != nil {
		return nil, err
	}

	if workspace.IsArchived {
		return workspace, nil
	}

	if err := s.workspaceStore.SetArchived(ctx, workspaceID, true); err != nil {
		return nil, fmt.Errorf("failed to archive workspace: %w", err)
	}
	workspace.IsArchived = true

	if err := s.audit.Record(ctx, workspaceID, domain.AuditWorkspaceArchived, actorID, nil); err != nil {
		return nil, err
	}

	return workspace, nil
}

// Restore clears the archival flag. Restoring a workspace that is not
// archived is a no-op success.
func (s *LifecycleService) Restore(ctx context.Context, workspaceID, actorID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.loadOwned(ctx, workspaceID, actorID)
	if err != nil {
		return nil, err
	}

	if !workspace.IsArchived {
		return workspace, nil
	}

	if err := s.workspaceStore.SetArchived(ctx, workspaceID, false); err != nil {
		return nil, fmt.Errorf("failed to restore workspace: %w", err)
	}
	workspace.IsArchived = false

	if err := s.audit.Record(ctx, workspaceID, domain.AuditWorkspaceRestored, actorID, nil); err != nil {
		return nil, err
	}

	return workspace, nil
}

// SoftDelete marks a workspace as deleted. The workspace disappears
// from every read path from this point on; the row itself is kept.
func (s *LifecycleService) SoftDelete(ctx context.Context, workspaceID, actorID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, workspaceID, actorID); err != nil {
		return err
	}

	if err := s.workspaceStore.SetDeleted(ctx, workspaceID, time.Now()); err != nil {
		return fmt.Errorf("failed to soft-delete workspace: %w", err)
	}

	return s.audit.Record(ctx, workspaceID, domain.AuditWorkspaceDeleted, actorID, nil)
}

// loadOwned loads a live workspace and verifies the actor owns it.
// Soft-deleted workspaces are indistinguishable from missing ones.
func (s *LifecycleService) loadOwned(ctx context.Context, workspaceID, actorID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if workspace.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	return workspace, nil
}
