package workspace

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// TaskPatch is a partial task update; nil members are left untouched.
type TaskPatch struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// CreateTask adds a task to a list, or a subtask when parentID is given.
// Subtasks stay in their parent's list regardless of the listID passed.
func (s *Service) CreateTask(ctx context.Context, actorID, listID string, parentID *string, name string) (models.Task, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return models.Task{}, errPersistence("list lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, list.ID); err != nil {
		return models.Task{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Task{}, errValidation("task name is required")
	}
	if parentID != nil && *parentID != "" {
		parent, err := s.store.GetTask(ctx, *parentID)
		if err != nil {
			return models.Task{}, errPersistence("parent lookup", err)
		}
		listID = parent.ListID
	} else {
		parentID = nil
	}

	t, err := s.store.CreateTask(ctx, models.Task{
		ID:       uuid.New().String(),
		ListID:   listID,
		ParentID: parentID,
		Name:     name,
		Status:   "TODO",
	})
	if err != nil {
		return models.Task{}, errPersistence("create task", err)
	}
	return t, nil
}

// UpdateTask applies a partial update. The status is free text, matched by
// name against the list's effective status set by consumers.
func (s *Service) UpdateTask(ctx context.Context, actorID, taskID string, patch TaskPatch) (models.Task, error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, errPersistence("task lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, t.ListID); err != nil {
		return models.Task{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Task{}, errValidation("task name is required")
		}
		t.Name = name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}

	updated, err := s.store.UpdateTask(ctx, t)
	if err != nil {
		return models.Task{}, errPersistence("update task", err)
	}
	return updated, nil
}

// DeleteTask removes a task; its subtasks, comments and field values go
// with it.
func (s *Service) DeleteTask(ctx context.Context, actorID, taskID string) (models.Task, error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, errPersistence("task lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, t.ListID); err != nil {
		return models.Task{}, err
	}
	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return models.Task{}, errPersistence("delete task", err)
	}
	return t, nil
}

// TaskWorkspace resolves the workspace and list containing a task, so
// transports can attach precise invalidation identity to value writes.
func (s *Service) TaskWorkspace(ctx context.Context, taskID string) (workspaceID, listID string, err error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return "", "", errPersistence("task lookup", err)
	}
	workspaceID, err = s.store.WorkspaceIDForNode(ctx, models.KindList, t.ListID)
	if err != nil {
		return "", "", errPersistence("resolve node", err)
	}
	return workspaceID, t.ListID, nil
}

// ListTasks returns a list's top level tasks, failing open to an empty set.
func (s *Service) ListTasks(ctx context.Context, listID string) []models.Task {
	out, err := s.store.ListTasks(ctx, listID)
	if err != nil {
		s.logger.Error("list tasks failed", slog.String("list_id", listID), slog.String("error", err.Error()))
		return []models.Task{}
	}
	if out == nil {
		out = []models.Task{}
	}
	return out
}

// ListSubtasks returns a task's direct subtasks, failing open.
func (s *Service) ListSubtasks(ctx context.Context, parentID string) []models.Task {
	out, err := s.store.ListSubtasks(ctx, parentID)
	if err != nil {
		s.logger.Error("list subtasks failed", slog.String("parent_id", parentID), slog.String("error", err.Error()))
		return []models.Task{}
	}
	if out == nil {
		out = []models.Task{}
	}
	return out
}

// CreateComment attaches a plain text comment to a task.
func (s *Service) CreateComment(ctx context.Context, actorID, taskID, content string) (models.Comment, error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return models.Comment{}, errPersistence("task lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, t.ListID); err != nil {
		return models.Comment{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, errValidation("comment content is required")
	}

	c, err := s.store.CreateComment(ctx, models.Comment{
		ID:      uuid.New().String(),
		TaskID:  taskID,
		UserID:  actorID,
		Content: content,
	})
	if err != nil {
		return models.Comment{}, errPersistence("create comment", err)
	}
	return c, nil
}

// ListComments returns a task's comments oldest first, failing open.
func (s *Service) ListComments(ctx context.Context, taskID string) []models.Comment {
	out, err := s.store.ListComments(ctx, taskID)
	if err != nil {
		s.logger.Error("list comments failed", slog.String("task_id", taskID), slog.String("error", err.Error()))
		return []models.Comment{}
	}
	if out == nil {
		out = []models.Comment{}
	}
	return out
}
