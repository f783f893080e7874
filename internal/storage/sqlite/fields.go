package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskdeck/internal/models"
)

const fieldCols = `id, list_id, name, description, type, options, currency, required, pinned, hide_empty, visibility, created_by, created_at, updated_at`

// CreateField persists a new custom field definition.
func (s *Store) CreateField(ctx context.Context, f models.CustomField) (models.CustomField, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO custom_fields(id, list_id, name, description, type, options, currency, required, pinned, hide_empty, visibility, created_by)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ListID, f.Name, f.Description, f.Type, f.Options, f.Currency, f.Required, f.Pinned, f.HideEmpty, f.Visibility, f.CreatedBy)
	if err != nil {
		return models.CustomField{}, fmt.Errorf("insert field: %w", err)
	}
	return s.GetField(ctx, f.ID)
}

// GetField fetches a single field definition by id.
func (s *Store) GetField(ctx context.Context, id string) (models.CustomField, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+fieldCols+` FROM custom_fields WHERE id = ?`, id)
	f, err := scanField(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CustomField{}, fmt.Errorf("field %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.CustomField{}, fmt.Errorf("get field: %w", err)
	}
	return f, nil
}

// UpdateField overwrites a field definition's mutable metadata. The caller
// merges partial updates into the full row first; stored values are never
// touched here, even on a type change.
func (s *Store) UpdateField(ctx context.Context, f models.CustomField) (models.CustomField, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE custom_fields
        SET name = ?, description = ?, type = ?, options = ?, currency = ?, required = ?, pinned = ?, hide_empty = ?, visibility = ?
        WHERE id = ?`,
		f.Name, f.Description, f.Type, f.Options, f.Currency, f.Required, f.Pinned, f.HideEmpty, f.Visibility, f.ID)
	if err != nil {
		return models.CustomField{}, fmt.Errorf("update field: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.CustomField{}, err
	}
	if affected == 0 {
		return models.CustomField{}, fmt.Errorf("field %s: %w", f.ID, ErrNotFound)
	}
	return s.GetField(ctx, f.ID)
}

// DeleteField removes a field definition. The values referencing it cascade
// away with it.
func (s *Store) DeleteField(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM custom_fields WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("field %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListFields returns a list's field definitions in creation order.
func (s *Store) ListFields(ctx context.Context, listID string) ([]models.CustomField, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+fieldCols+` FROM custom_fields WHERE list_id = ? ORDER BY created_at ASC, rowid ASC`, listID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var out []models.CustomField
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpsertValue writes a raw string value for a (task, field) pair, updating
// in place when the pair already exists.
func (s *Store) UpsertValue(ctx context.Context, v models.CustomFieldValue) (models.CustomFieldValue, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO custom_field_values(id, task_id, field_id, value)
        VALUES(?, ?, ?, ?)
        ON CONFLICT(task_id, field_id) DO UPDATE SET
            value = excluded.value,
            updated_at = CURRENT_TIMESTAMP`,
		v.ID, v.TaskID, v.FieldID, v.Value)
	if err != nil {
		return models.CustomFieldValue{}, fmt.Errorf("upsert value: %w", err)
	}
	return s.GetValue(ctx, v.TaskID, v.FieldID)
}

// GetValue fetches the value row for a (task, field) pair.
func (s *Store) GetValue(ctx context.Context, taskID, fieldID string) (models.CustomFieldValue, error) {
	var v models.CustomFieldValue
	err := s.db.QueryRowContext(ctx, `
        SELECT id, task_id, field_id, value, created_at, updated_at
        FROM custom_field_values WHERE task_id = ? AND field_id = ?`, taskID, fieldID).
		Scan(&v.ID, &v.TaskID, &v.FieldID, &v.Value, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CustomFieldValue{}, fmt.Errorf("value (%s, %s): %w", taskID, fieldID, ErrNotFound)
	}
	if err != nil {
		return models.CustomFieldValue{}, fmt.Errorf("get value: %w", err)
	}
	return v, nil
}

// ListValues returns every stored value of a task.
func (s *Store) ListValues(ctx context.Context, taskID string) ([]models.CustomFieldValue, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, task_id, field_id, value, created_at, updated_at
        FROM custom_field_values WHERE task_id = ? ORDER BY created_at ASC, rowid ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list values: %w", err)
	}
	defer rows.Close()

	var out []models.CustomFieldValue
	for rows.Next() {
		var v models.CustomFieldValue
		if err := rows.Scan(&v.ID, &v.TaskID, &v.FieldID, &v.Value, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CountValuesForField reports how many value rows reference a field.
func (s *Store) CountValuesForField(ctx context.Context, fieldID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM custom_field_values WHERE field_id = ?`, fieldID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count values: %w", err)
	}
	return n, nil
}

func scanField(r rowScanner) (models.CustomField, error) {
	var f models.CustomField
	err := r.Scan(&f.ID, &f.ListID, &f.Name, &f.Description, &f.Type, &f.Options, &f.Currency,
		&f.Required, &f.Pinned, &f.HideEmpty, &f.Visibility, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}
