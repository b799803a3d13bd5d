package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
)

// AuditRepository handles audit log data access. Entries are append
// only: there is no update or delete path.
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append inserts an audit log entry
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO audit_log (id, workspace_id, action, actor_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		entry.ID,
		entry.WorkspaceID,
		entry.Action,
		entry.ActorID,
		payload,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// ListByWorkspace retrieves recent audit entries for a workspace
func (r *AuditRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT id, workspace_id, action, actor_id, payload, created_at
		FROM audit_log
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		var payloadJSON []byte

		if err := rows.Scan(
			&entry.ID,
			&entry.WorkspaceID,
			&entry.Action,
			&entry.ActorID,
			&payloadJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if len(payloadJSON) > 0 {
			if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
