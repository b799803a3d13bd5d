package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// MemberCache caches resolved member lists per workspace
type MemberCache interface {
	Get(ctx context.Context, workspaceID uuid.UUID) ([]domain.Membership, error)
	Set(ctx context.Context, workspaceID uuid.UUID, members []domain.Membership) error
	Invalidate(ctx context.Context, workspaceID uuid.UUID) error
}

// MembershipService maintains the set of users with access to a
// workspace. The owner is always part of the member list, whether or
// not an explicit owner row exists.
type MembershipService struct {
	workspaceStore  domain.WorkspaceStore
	membershipStore domain.MembershipStore
	audit           *AuditTrail
	cache           MemberCache
}

// NewMembershipService creates a new membership service. cache may be
// nil, in which case every list hits the store.
func NewMembershipService(
	workspaceStore domain.WorkspaceStore,
	membershipStore domain.MembershipStore,
	audit *AuditTrail,
	cache MemberCache,
) *MembershipService {
	return &MembershipService{
		workspaceStore:  workspaceStore,
		membershipStore: membershipStore,
		audit:           audit,
		cache:           cache,
	}
}

// ListMembers returns all memberships for a workspace. Workspaces
// created before explicit owner rows existed have no OWNER row; for
// those an implicit owner membership is synthesized from the workspace
// itself so the owner still appears first in the list. A missing or
// soft-deleted workspace yields an empty list, not an error.
func (s *MembershipService) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.Membership, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, workspaceID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return []domain.Membership{}, nil
	}

	rows, err := s.membershipStore.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	hasOwnerRow := false
	members := make([]domain.Membership, 0, len(rows)+1)
	for _, row := range rows {
		if row.Role == domain.RoleOwner {
			hasOwnerRow = true
		}
		members = append(members, domain.Membership{WorkspaceMember: row})
	}

	if !hasOwnerRow {
		implicit := domain.Membership{
			WorkspaceMember: domain.WorkspaceMember{
				WorkspaceID: workspace.ID,
				UserID:      workspace.OwnerID,
				Role:        domain.RoleOwner,
				JoinedAt:    workspace.CreatedAt,
			},
			Implicit: true,
		}
		members = append([]domain.Membership{implicit}, members...)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, workspaceID, members); err != nil {
			log.Warn().Err(err).Msg("Failed to cache member list")
		}
	}

	return members, nil
}

// AddMember adds a user to a workspace. The call is idempotent: if a
// membership row already exists it is returned unchanged and the
// requested role is NOT applied. Role changes are not an add.
func (s *MembershipService) AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role string, actorID uuid.UUID) (*domain.WorkspaceMember, error) {
	if role == "" {
		role = domain.RoleMember
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, domain.ErrNotFound
	}

	existing, err := s.membershipStore.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	member := &domain.WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    time.Now(),
	}

	if err := s.membershipStore.Create(ctx, member); err != nil {
		// A concurrent add for the same pair lost the race against the
		// unique index. Re-read and return the surviving row.
		if errors.Is(err, domain.ErrDuplicateMember) {
			return s.membershipStore.GetByWorkspaceAndUser(ctx, workspaceID, userID)
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	if err := s.audit.Record(ctx, workspaceID, domain.AuditMemberAdded, actorID, map[string]any{
		"user_id": userID.String(),
		"role":    role,
	}); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, workspaceID)

	return member, nil
}

// RemoveMember removes a user from a workspace. The owner membership
// can never be removed through this path, regardless of caller.
func (s *MembershipService) RemoveMember(ctx context.Context, workspaceID, userID, actorID uuid.UUID) error {
	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return domain.ErrNotFound
	}

	target, err := s.membershipStore.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if target.Role == domain.RoleOwner {
		return domain.ErrOwnerImmutable
	}

	if err := s.membershipStore.Delete(ctx, workspaceID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if err := s.audit.Record(ctx, workspaceID, domain.AuditMemberRemoved, actorID, map[string]any{
		"user_id": userID.String(),
	}); err != nil {
		return err
	}

	s.invalidateCache(ctx, workspaceID)

	return nil
}

// GetMember retrieves a single membership row, nil when absent
func (s *MembershipService) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	return s.membershipStore.GetByWorkspaceAndUser(ctx, workspaceID, userID)
}

func (s *MembershipService) invalidateCache(ctx context.Context, workspaceID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, workspaceID); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate member cache")
	}
}
