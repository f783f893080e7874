package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/workspace"
)

type createTaskRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

type updateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// handleCreateTask adds a task or subtask to a list.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	task, err := s.svc.CreateTask(c.Request.Context(), actor(c), c.Param("id"), req.ParentID, req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, task.ListID)
	s.invalidate(workspaceID, task.ListID)
	respondData(c, http.StatusCreated, gin.H{"task": task, "workspace_id": workspaceID})
}

// handleUpdateTask applies a partial update to a task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	patch := workspace.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid due_date format"})
			return
		}
		patch.DueDate = &due
	}

	task, err := s.svc.UpdateTask(c.Request.Context(), actor(c), c.Param("id"), patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, task.ListID)
	s.invalidate(workspaceID, task.ListID)
	respondData(c, http.StatusOK, gin.H{"task": task, "workspace_id": workspaceID})
}

// handleDeleteTask removes a task with its subtasks, comments and values.
func (s *Server) handleDeleteTask(c *gin.Context) {
	task, err := s.svc.DeleteTask(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, task.ListID)
	s.invalidate(workspaceID, task.ListID)
	respondData(c, http.StatusOK, gin.H{"task": task, "workspace_id": workspaceID})
}

// handleListTasks returns a list's top level tasks.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks := s.svc.ListTasks(c.Request.Context(), c.Param("id"))
	respondData(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleListSubtasks returns a task's direct subtasks.
func (s *Server) handleListSubtasks(c *gin.Context) {
	tasks := s.svc.ListSubtasks(c.Request.Context(), c.Param("id"))
	respondData(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleCreateComment attaches a comment to a task.
func (s *Server) handleCreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	comment, err := s.svc.CreateComment(c.Request.Context(), actor(c), c.Param("id"), req.Content)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"comment": comment})
}

// handleListComments returns a task's comments oldest first.
func (s *Server) handleListComments(c *gin.Context) {
	comments := s.svc.ListComments(c.Request.Context(), c.Param("id"))
	respondData(c, http.StatusOK, gin.H{"comments": comments})
}
