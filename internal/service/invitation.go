package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
	"github.com/planora/planora-api/internal/security"
	"github.com/rs/zerolog/log"
)

// InvitationService handles the redeemable-secret flow for onboarding
// new workspace members. A raw token is handed out exactly once at
// creation; only its one-way hash is ever persisted, so acceptance has
// to scan all pending invitations and compare hashes.
type InvitationService struct {
	workspaceStore  domain.WorkspaceStore
	invitationStore domain.InvitationStore
	members         *MembershipService
	audit           *AuditTrail
	hasher          security.TokenHasher
	ttl             time.Duration
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	workspaceStore domain.WorkspaceStore,
	invitationStore domain.InvitationStore,
	members *MembershipService,
	audit *AuditTrail,
	hasher security.TokenHasher,
	ttl time.Duration,
) *InvitationService {
	return &InvitationService{
		workspaceStore:  workspaceStore,
		invitationStore: invitationStore,
		members:         members,
		audit:           audit,
		hasher:          hasher,
		ttl:             ttl,
	}
}

// Create issues a new invitation. It returns the invitation record and
// the raw token; the token is the caller's only chance to read it, and
// it never appears in storage, logs, or the audit trail.
func (s *InvitationService) Create(ctx context.Context, workspaceID uuid.UUID, email, role string, invitedByID uuid.UUID) (*domain.WorkspaceInvitation, string, error) {
	if role == "" {
		role = domain.RoleMember
	}
	if !domain.ValidRole(role) {
		return nil, "", fmt.Errorf("invalid role %q", role)
	}

	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, "", domain.ErrNotFound
	}

	rawToken, err := security.GenerateToken()
	if err != nil {
		return nil, "", err
	}

	tokenHash, err := s.hasher.Hash(rawToken)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	invitation := &domain.WorkspaceInvitation{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Email:       email,
		TokenHash:   tokenHash,
		Role:        role,
		InvitedByID: invitedByID,
		ExpiresAt:   now.Add(s.ttl),
		Status:      domain.InvitationPending,
		CreatedAt:   now,
	}

	if err := s.invitationStore.Create(ctx, invitation); err != nil {
		return nil, "", fmt.Errorf("failed to create invitation: %w", err)
	}

	if err := s.audit.Record(ctx, workspaceID, domain.AuditInvitationCreated, invitedByID, map[string]any{
		"email": email,
		"role":  role,
	}); err != nil {
		return nil, "", err
	}

	log.Info().
		Str("workspace_id", workspaceID.String()).
		Str("invitation_id", invitation.ID.String()).
		Msg("Invitation created")

	return invitation, rawToken, nil
}

// Accept redeems a raw token for the calling user. The token is
// compared against every pending invitation; the first hash match in
// iteration order wins. An expired match fails the same way as no
// match at the HTTP boundary, so callers cannot probe which tokens
// exist. Membership creation is idempotent: a user who already belongs
// to the workspace gets no duplicate row and no error, and repeated
// calls with the same token succeed.
func (s *InvitationService) Accept(ctx context.Context, rawToken string, userID uuid.UUID) (*domain.WorkspaceInvitation, error) {
	candidates, err := s.invitationStore.ListRedeemable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	// First hash match in iteration order wins; with a collision-free
	// hasher there is at most one.
	var match *domain.WorkspaceInvitation
	for i := range candidates {
		if s.hasher.Compare(rawToken, candidates[i].TokenHash) {
			match = &candidates[i]
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("invalid invitation token: %w", domain.ErrNotFound)
	}

	if match.IsExpired(time.Now()) {
		return nil, domain.ErrInvitationExpired
	}

	// Materialize membership before anything else so the audit log
	// never records an acceptance ahead of the membership decision.
	if _, err := s.members.AddMember(ctx, match.WorkspaceID, userID, match.Role, userID); err != nil {
		return nil, err
	}

	if err := s.invitationStore.UpdateStatus(ctx, match.ID, domain.InvitationAccepted); err != nil {
		return nil, fmt.Errorf("failed to update invitation status: %w", err)
	}
	match.Status = domain.InvitationAccepted

	if err := s.audit.Record(ctx, match.WorkspaceID, domain.AuditInvitationAccepted, userID, map[string]any{
		"user_id":      userID.String(),
		"workspace_id": match.WorkspaceID.String(),
	}); err != nil {
		return nil, err
	}

	return match, nil
}

// List returns all invitations for a workspace, optionally filtered by
// status. It has no side effects: expired invitations stay pending
// with a past expiry.
func (s *InvitationService) List(ctx context.Context, workspaceID uuid.UUID, status *domain.InvitationStatus) ([]domain.WorkspaceInvitation, error) {
	workspace, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil || workspace.IsDeleted {
		return nil, domain.ErrNotFound
	}

	invitations, err := s.invitationStore.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	if status == nil {
		return invitations, nil
	}

	filtered := make([]domain.WorkspaceInvitation, 0, len(invitations))
	for _, invitation := range invitations {
		if invitation.Status == *status {
			filtered = append(filtered, invitation)
		}
	}

	return filtered, nil
}
