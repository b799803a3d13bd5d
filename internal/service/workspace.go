package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
)

// WorkspaceService handles workspace CRUD operations
type WorkspaceService struct {
	workspaceStore  domain.WorkspaceStore
	membershipStore domain.MembershipStore
	auditStore      domain.AuditStore
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceStore domain.WorkspaceStore,
	membershipStore domain.MembershipStore,
	auditStore domain.AuditStore,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceStore:  workspaceStore,
		membershipStore: membershipStore,
		auditStore:      auditStore,
	}
}

// Create creates a new workspace and an explicit owner membership row
// for the creator in the same flow
func (s *WorkspaceService) Create(ctx context.Context, ownerID uuid.UUID, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	taken, err := s.workspaceStore.SlugExists(ctx, ownerID, input.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, domain.ErrSlugTaken
	}

	tier := input.Tier
	if tier == "" {
		tier = domain.TierFree
	}

	now := time.Now()
	workspace := &domain.Workspace{
		ID:        uuid.New(),
		Name:      input.Name,
		Slug:      input.Slug,
		OwnerID:   ownerID,
		Tier:      tier,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.workspaceStore.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	owner := &domain.WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspace.ID,
		UserID:      ownerID,
		Role:        domain.RoleOwner,
		JoinedAt:    now,
	}

	if err := s.membershipStore.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	return workspace, nil
}

// GetByID retrieves a workspace by ID with an access check: the caller
// must be the owner or hold a membership row
func (s *WorkspaceService) GetByID(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, domain.ErrNotFound
	}

	if workspace.OwnerID != userID {
		member, err := s.membershipStore.GetByWorkspaceAndUser(ctx, workspaceID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if member == nil {
			return nil, domain.ErrForbidden
		}
	}

	return workspace, nil
}

// ListByUser retrieves all workspaces a user has access to
func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Update updates workspace fields. Requires owner or admin role.
func (s *WorkspaceService) Update(ctx context.Context, userID, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, domain.ErrNotFound
	}

	if workspace.OwnerID != userID {
		member, err := s.membershipStore.GetByWorkspaceAndUser(ctx, workspaceID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get member: %w", err)
		}
		if member == nil || member.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	}

	if input.Slug != nil && *input.Slug != workspace.Slug {
		taken, err := s.workspaceStore.SlugExists(ctx, workspace.OwnerID, *input.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			return nil, domain.ErrSlugTaken
		}
	}

	if err := s.workspaceStore.Update(ctx, workspaceID, &input); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return s.workspaceStore.GetByID(ctx, workspaceID)
}

// AuditLog returns recent audit entries for a workspace. Owner only.
func (s *WorkspaceService) AuditLog(ctx context.Context, userID, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if workspace.OwnerID != userID {
		return nil, domain.ErrForbidden
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := s.auditStore.ListByWorkspace(ctx, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}
