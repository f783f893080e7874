package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskdeck/internal/models"
)

const taskCols = `id, list_id, parent_id, name, description, status, priority, due_date, created_at, updated_at`

// CreateTask persists a new task or subtask.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO tasks(id, list_id, parent_id, name, description, status, priority, due_date)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ListID, t.ParentID, t.Name, t.Description, t.Status, t.Priority, t.DueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(ctx, t.ID)
}

// GetTask fetches a single task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask overwrites a task's mutable fields. The caller merges partial
// updates into the full row first.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE tasks SET name = ?, description = ?, status = ?, priority = ?, due_date = ? WHERE id = ?`,
		t.Name, t.Description, t.Status, t.Priority, t.DueDate, t.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return s.GetTask(ctx, t.ID)
}

// DeleteTask removes a task; subtasks, comments and field values cascade.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListTasks returns a list's top level tasks, oldest first.
func (s *Store) ListTasks(ctx context.Context, listID string) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskCols+` FROM tasks WHERE list_id = ? AND parent_id IS NULL ORDER BY created_at ASC, rowid ASC`, listID)
}

// ListSubtasks returns a task's direct subtasks, oldest first.
func (s *Store) ListSubtasks(ctx context.Context, parentID string) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskCols+` FROM tasks WHERE parent_id = ? ORDER BY created_at ASC, rowid ASC`, parentID)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateComment persists a new comment on a task.
func (s *Store) CreateComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO comments(id, task_id, user_id, content) VALUES(?, ?, ?, ?)`,
		c.ID, c.TaskID, c.UserID, c.Content)
	if err != nil {
		return models.Comment{}, fmt.Errorf("insert comment: %w", err)
	}

	var out models.Comment
	err = s.db.QueryRowContext(ctx, `SELECT id, task_id, user_id, content, created_at, updated_at FROM comments WHERE id = ?`, c.ID).
		Scan(&out.ID, &out.TaskID, &out.UserID, &out.Content, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return models.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	return out, nil
}

// ListComments returns a task's comments, oldest first.
func (s *Store) ListComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, task_id, user_id, content, created_at, updated_at
        FROM comments WHERE task_id = ? ORDER BY created_at ASC, rowid ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanTask(r rowScanner) (models.Task, error) {
	var t models.Task
	err := r.Scan(&t.ID, &t.ListID, &t.ParentID, &t.Name, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
