package sqlite

import (
	"context"
	"fmt"

	"taskdeck/internal/models"
)

func statusScopeColumn(scope models.NodeKind) (string, error) {
	switch scope {
	case models.KindSpace:
		return "space_id", nil
	case models.KindList:
		return "list_id", nil
	default:
		return "", fmt.Errorf("invalid status scope %q", scope)
	}
}

// ReplaceStatuses atomically swaps the status set of a scope: all existing
// rows are deleted and the given ones inserted with ord equal to their slice
// index. The delete and inserts run inside one transaction so a failure can
// never leave the scope half-replaced.
func (s *Store) ReplaceStatuses(ctx context.Context, scope models.NodeKind, scopeID string, statuses []models.Status) ([]models.Status, error) {
	col, err := statusScopeColumn(scope)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM statuses WHERE `+col+` = ?`, scopeID); err != nil {
		return nil, fmt.Errorf("delete statuses: %w", err)
	}

	for i, st := range statuses {
		var spaceID, listID any
		if scope == models.KindSpace {
			spaceID = scopeID
		} else {
			listID = scopeID
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO statuses(id, name, color, icon, category, ord, space_id, list_id) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, st.Name, st.Color, st.Icon, st.Category, i, spaceID, listID); err != nil {
			return nil, fmt.Errorf("insert status %q: %w", st.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.ListStatuses(ctx, scope, scopeID)
}

// ListStatuses returns a scope's statuses ordered by ord ascending.
func (s *Store) ListStatuses(ctx context.Context, scope models.NodeKind, scopeID string) ([]models.Status, error) {
	col, err := statusScopeColumn(scope)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, icon, category, ord, space_id, list_id FROM statuses WHERE `+col+` = ? ORDER BY ord ASC`, scopeID)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var out []models.Status
	for rows.Next() {
		var st models.Status
		if err := rows.Scan(&st.ID, &st.Name, &st.Color, &st.Icon, &st.Category, &st.Order, &st.SpaceID, &st.ListID); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
