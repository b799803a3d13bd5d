package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/planora/planora-api/internal/domain"
)

// WorkspaceRepository handles workspace data access. Soft-deleted
// workspaces are filtered out of every read.
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, slug, owner_id, tier, is_archived, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		workspace.ID,
		workspace.Name,
		workspace.Slug,
		workspace.OwnerID,
		workspace.Tier,
		workspace.IsArchived,
		workspace.IsDeleted,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID, excluding soft-deleted rows
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, name, slug, owner_id, tier, is_archived, is_deleted, deleted_at, created_at, updated_at
		FROM workspaces
		WHERE id = $1 AND is_deleted = FALSE
	`

	var workspace domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.Slug,
		&workspace.OwnerID,
		&workspace.Tier,
		&workspace.IsArchived,
		&workspace.IsDeleted,
		&workspace.DeletedAt,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// ListByUserID retrieves all workspaces a user belongs to, either
// through an explicit membership row or as the owner
func (r *WorkspaceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	query := `
		SELECT DISTINCT w.id, w.name, w.slug, w.owner_id, w.tier, w.is_archived, w.is_deleted, w.deleted_at, w.created_at, w.updated_at
		FROM workspaces w
		LEFT JOIN workspace_members wm ON w.id = wm.workspace_id
		WHERE (wm.user_id = $1 OR w.owner_id = $1) AND w.is_deleted = FALSE
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var workspace domain.Workspace
		if err := rows.Scan(
			&workspace.ID,
			&workspace.Name,
			&workspace.Slug,
			&workspace.OwnerID,
			&workspace.Tier,
			&workspace.IsArchived,
			&workspace.IsDeleted,
			&workspace.DeletedAt,
			&workspace.CreatedAt,
			&workspace.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}

	return workspaces, nil
}

// Update updates workspace fields
func (r *WorkspaceRepository) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error {
	query := `
		UPDATE workspaces
		SET name = COALESCE($2, name),
		    slug = COALESCE($3, slug),
		    updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`

	_, err := r.db.Pool.Exec(ctx, query, id, update.Name, update.Slug)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	return nil
}

// SetArchived sets the archival flag without touching the deletion flag
func (r *WorkspaceRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	query := `
		UPDATE workspaces
		SET is_archived = $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`

	_, err := r.db.Pool.Exec(ctx, query, id, archived)
	if err != nil {
		return fmt.Errorf("failed to set archived flag: %w", err)
	}

	return nil
}

// SetDeleted soft-deletes a workspace and stamps the deletion time
func (r *WorkspaceRepository) SetDeleted(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	query := `
		UPDATE workspaces
		SET is_deleted = TRUE, deleted_at = $2, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query, id, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to soft-delete workspace: %w", err)
	}

	return nil
}

// SlugExists checks whether an owner already has a workspace with the
// given slug. Slugs are unique per owner, not globally.
func (r *WorkspaceRepository) SlugExists(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM workspaces
			WHERE owner_id = $1 AND slug = $2 AND is_deleted = FALSE
		)
	`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, ownerID, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}
