package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskdeck/internal/models"
)

// CreateWorkspace inserts the workspace and its owner membership row in one
// transaction, so a workspace can never exist without its owner as a member.
func (s *Store) CreateWorkspace(ctx context.Context, w models.Workspace) (models.Workspace, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Workspace{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO workspaces(id, name, owner_id) VALUES(?, ?, ?)`,
		w.ID, w.Name, w.OwnerID); err != nil {
		return models.Workspace{}, fmt.Errorf("insert workspace: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO workspace_members(user_id, workspace_id, role) VALUES(?, ?, ?)`,
		w.OwnerID, w.ID, models.RoleOwner); err != nil {
		return models.Workspace{}, fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Workspace{}, fmt.Errorf("commit tx: %w", err)
	}
	return s.GetWorkspace(ctx, w.ID)
}

// GetWorkspace fetches a single workspace by id.
func (s *Store) GetWorkspace(ctx context.Context, id string) (models.Workspace, error) {
	var w models.Workspace
	err := s.db.QueryRowContext(ctx, `SELECT id, name, owner_id, created_at, updated_at FROM workspaces WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Workspace{}, fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}
	return w, nil
}

// IsMember reports whether the user has a membership row in the workspace.
func (s *Store) IsMember(ctx context.Context, userID, workspaceID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM workspace_members WHERE user_id = ? AND workspace_id = ?`,
		userID, workspaceID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("membership lookup: %w", err)
	}
	return true, nil
}

// AddMember inserts a membership row; adding an existing member updates the
// role in place.
func (s *Store) AddMember(ctx context.Context, m models.WorkspaceMember) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO workspace_members (user_id, workspace_id, role)
        VALUES (?, ?, ?)
        ON CONFLICT(user_id, workspace_id) DO UPDATE SET role = excluded.role`,
		m.UserID, m.WorkspaceID, m.Role)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// ListWorkspaces returns the workspaces a user belongs to, newest first.
func (s *Store) ListWorkspaces(ctx context.Context, userID string) ([]models.Workspace, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT w.id, w.name, w.owner_id, w.created_at, w.updated_at
        FROM workspaces w
        JOIN workspace_members m ON m.workspace_id = w.id
        WHERE m.user_id = ?
        ORDER BY w.created_at DESC, w.rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var out []models.Workspace
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
