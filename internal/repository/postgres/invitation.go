package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
)

// InvitationRepository handles invitation data access
type InvitationRepository struct {
	db *DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create persists a new invitation
func (r *InvitationRepository) Create(ctx context.Context, invitation *domain.WorkspaceInvitation) error {
	query := `
		INSERT INTO workspace_invitations (id, workspace_id, email, token_hash, role, invited_by_id, expires_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		invitation.ID,
		invitation.WorkspaceID,
		invitation.Email,
		invitation.TokenHash,
		invitation.Role,
		invitation.InvitedByID,
		invitation.ExpiresAt,
		invitation.Status,
		invitation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// ListRedeemable retrieves all invitations across every workspace.
// The token alone must identify the invitation, and the one-way hash
// prevents an indexed lookup, so acceptance scans this full set.
// Accepted rows are included to keep re-redemption idempotent.
func (r *InvitationRepository) ListRedeemable(ctx context.Context) ([]domain.WorkspaceInvitation, error) {
	query := `
		SELECT id, workspace_id, email, token_hash, role, invited_by_id, expires_at, status, created_at
		FROM workspace_invitations
		ORDER BY created_at ASC
	`

	return r.queryInvitations(ctx, query)
}

// ListByWorkspace retrieves all invitations for a workspace, any status
func (r *InvitationRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceInvitation, error) {
	query := `
		SELECT id, workspace_id, email, token_hash, role, invited_by_id, expires_at, status, created_at
		FROM workspace_invitations
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`

	return r.queryInvitations(ctx, query, workspaceID)
}

// UpdateStatus transitions an invitation's status
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) error {
	query := `UPDATE workspace_invitations SET status = $2 WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update invitation status: %w", err)
	}

	return nil
}

func (r *InvitationRepository) queryInvitations(ctx context.Context, query string, args ...any) ([]domain.WorkspaceInvitation, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []domain.WorkspaceInvitation
	for rows.Next() {
		var invitation domain.WorkspaceInvitation
		if err := rows.Scan(
			&invitation.ID,
			&invitation.WorkspaceID,
			&invitation.Email,
			&invitation.TokenHash,
			&invitation.Role,
			&invitation.InvitedByID,
			&invitation.ExpiresAt,
			&invitation.Status,
			&invitation.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	return invitations, nil
}
