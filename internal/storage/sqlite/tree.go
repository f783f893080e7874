package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskdeck/internal/models"
)

const spaceCols = `id, workspace_id, name, color, icon, is_favorite, is_archived, created_at, updated_at`
const folderCols = `id, space_id, name, color, icon, is_favorite, is_archived, created_at, updated_at`
const listCols = `id, space_id, folder_id, name, color, icon, is_favorite, is_archived, created_at, updated_at`

// CreateSpace persists a new space.
func (s *Store) CreateSpace(ctx context.Context, sp models.Space) (models.Space, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO spaces(id, workspace_id, name, color, icon) VALUES(?, ?, ?, ?, ?)`,
		sp.ID, sp.WorkspaceID, sp.Name, sp.Color, sp.Icon)
	if err != nil {
		return models.Space{}, fmt.Errorf("insert space: %w", err)
	}
	return s.GetSpace(ctx, sp.ID)
}

// GetSpace fetches a single space by id.
func (s *Store) GetSpace(ctx context.Context, id string) (models.Space, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+spaceCols+` FROM spaces WHERE id = ?`, id)
	sp, err := scanSpace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Space{}, fmt.Errorf("space %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Space{}, fmt.Errorf("get space: %w", err)
	}
	return sp, nil
}

// ListSpaces returns a workspace's spaces, newest first. created_at has one
// second resolution, so rowid breaks ties in insertion order here and in the
// other creation-ordered listings.
func (s *Store) ListSpaces(ctx context.Context, workspaceID string) ([]models.Space, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+spaceCols+` FROM spaces WHERE workspace_id = ? ORDER BY created_at DESC, rowid DESC`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	var out []models.Space
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// CreateFolder persists a new folder.
func (s *Store) CreateFolder(ctx context.Context, f models.Folder) (models.Folder, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO folders(id, space_id, name, color, icon) VALUES(?, ?, ?, ?, ?)`,
		f.ID, f.SpaceID, f.Name, f.Color, f.Icon)
	if err != nil {
		return models.Folder{}, fmt.Errorf("insert folder: %w", err)
	}
	return s.GetFolder(ctx, f.ID)
}

// GetFolder fetches a single folder by id.
func (s *Store) GetFolder(ctx context.Context, id string) (models.Folder, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+folderCols+` FROM folders WHERE id = ?`, id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Folder{}, fmt.Errorf("get folder: %w", err)
	}
	return f, nil
}

// ListFolders returns a space's folders, oldest first.
func (s *Store) ListFolders(ctx context.Context, spaceID string) ([]models.Folder, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+folderCols+` FROM folders WHERE space_id = ? ORDER BY created_at ASC, rowid ASC`, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var out []models.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateList persists a new list, folderless or inside a folder.
func (s *Store) CreateList(ctx context.Context, l models.List) (models.List, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO lists(id, space_id, folder_id, name, color, icon) VALUES(?, ?, ?, ?, ?, ?)`,
		l.ID, l.SpaceID, l.FolderID, l.Name, l.Color, l.Icon)
	if err != nil {
		return models.List{}, fmt.Errorf("insert list: %w", err)
	}
	return s.GetList(ctx, l.ID)
}

// GetList fetches a single list by id.
func (s *Store) GetList(ctx context.Context, id string) (models.List, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.List{}, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.List{}, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

// ListLists returns every list of a space, foldered or not, oldest first.
func (s *Store) ListLists(ctx context.Context, spaceID string) ([]models.List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+listCols+` FROM lists WHERE space_id = ? ORDER BY created_at ASC, rowid ASC`, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var out []models.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func nodeTable(kind models.NodeKind) (string, error) {
	switch kind {
	case models.KindSpace:
		return "spaces", nil
	case models.KindFolder:
		return "folders", nil
	case models.KindList:
		return "lists", nil
	default:
		return "", fmt.Errorf("unknown node kind %q", kind)
	}
}

// RenameNode updates a node's name, dispatching on the kind tag.
func (s *Store) RenameNode(ctx context.Context, kind models.NodeKind, id, name string) error {
	table, err := nodeTable(kind)
	if err != nil {
		return err
	}
	return s.execNode(ctx, kind, id, `UPDATE `+table+` SET name = ? WHERE id = ?`, name, id)
}

// DeleteNode removes a node. Foreign keys cascade the structural children,
// their statuses, custom fields, tasks and values.
func (s *Store) DeleteNode(ctx context.Context, kind models.NodeKind, id string) error {
	table, err := nodeTable(kind)
	if err != nil {
		return err
	}
	return s.execNode(ctx, kind, id, `DELETE FROM `+table+` WHERE id = ?`, id)
}

// SetNodeFavorite overwrites the favorite flag. Concurrent toggles race with
// last-write-wins semantics.
func (s *Store) SetNodeFavorite(ctx context.Context, kind models.NodeKind, id string, favorite bool) error {
	table, err := nodeTable(kind)
	if err != nil {
		return err
	}
	return s.execNode(ctx, kind, id, `UPDATE `+table+` SET is_favorite = ? WHERE id = ?`, favorite, id)
}

// GetNodeFavorite reads the current favorite flag.
func (s *Store) GetNodeFavorite(ctx context.Context, kind models.NodeKind, id string) (bool, error) {
	table, err := nodeTable(kind)
	if err != nil {
		return false, err
	}
	var fav bool
	err = s.db.QueryRowContext(ctx, `SELECT is_favorite FROM `+table+` WHERE id = ?`, id).Scan(&fav)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("get favorite: %w", err)
	}
	return fav, nil
}

// UpdateNodeColorIcon overwrites color and icon together.
func (s *Store) UpdateNodeColorIcon(ctx context.Context, kind models.NodeKind, id, color, icon string) error {
	table, err := nodeTable(kind)
	if err != nil {
		return err
	}
	return s.execNode(ctx, kind, id, `UPDATE `+table+` SET color = ?, icon = ? WHERE id = ?`, color, icon, id)
}

// UpdateNodeColor overwrites the color only, leaving the icon in place.
func (s *Store) UpdateNodeColor(ctx context.Context, kind models.NodeKind, id, color string) error {
	table, err := nodeTable(kind)
	if err != nil {
		return err
	}
	return s.execNode(ctx, kind, id, `UPDATE `+table+` SET color = ? WHERE id = ?`, color, id)
}

// WorkspaceIDForNode resolves the workspace that owns a node, walking up
// through spaces for folders and lists.
func (s *Store) WorkspaceIDForNode(ctx context.Context, kind models.NodeKind, id string) (string, error) {
	var query string
	switch kind {
	case models.KindSpace:
		query = `SELECT workspace_id FROM spaces WHERE id = ?`
	case models.KindFolder:
		query = `SELECT s.workspace_id FROM folders f JOIN spaces s ON s.id = f.space_id WHERE f.id = ?`
	case models.KindList:
		query = `SELECT s.workspace_id FROM lists l JOIN spaces s ON s.id = l.space_id WHERE l.id = ?`
	default:
		return "", fmt.Errorf("unknown node kind %q", kind)
	}

	var workspaceID string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	return workspaceID, nil
}

func (s *Store) execNode(ctx context.Context, kind models.NodeKind, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpace(r rowScanner) (models.Space, error) {
	var sp models.Space
	err := r.Scan(&sp.ID, &sp.WorkspaceID, &sp.Name, &sp.Color, &sp.Icon, &sp.IsFavorite, &sp.IsArchived, &sp.CreatedAt, &sp.UpdatedAt)
	return sp, err
}

func scanFolder(r rowScanner) (models.Folder, error) {
	var f models.Folder
	err := r.Scan(&f.ID, &f.SpaceID, &f.Name, &f.Color, &f.Icon, &f.IsFavorite, &f.IsArchived, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func scanList(r rowScanner) (models.List, error) {
	var l models.List
	err := r.Scan(&l.ID, &l.SpaceID, &l.FolderID, &l.Name, &l.Color, &l.Icon, &l.IsFavorite, &l.IsArchived, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}
