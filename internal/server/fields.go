package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/workspace"
)

type createFieldRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Options     string `json:"options"`
	Currency    string `json:"currency"`
	Required    bool   `json:"required"`
	Pinned      bool   `json:"pinned"`
	HideEmpty   bool   `json:"hide_empty"`
	Visibility  string `json:"visibility"`
}

type updateFieldRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Options     *string `json:"options"`
	Currency    *string `json:"currency"`
	Required    *bool   `json:"required"`
	Pinned      *bool   `json:"pinned"`
	HideEmpty   *bool   `json:"hide_empty"`
	Visibility  *string `json:"visibility"`
}

type setValueRequest struct {
	Value string `json:"value"`
}

// handleCreateField defines a custom field on a list.
func (s *Server) handleCreateField(c *gin.Context) {
	var req createFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	field, err := s.svc.CreateField(c.Request.Context(), actor(c), c.Param("id"), req.Name, models.FieldType(req.Type), workspace.FieldMetadata{
		Description: req.Description,
		Options:     req.Options,
		Currency:    req.Currency,
		Required:    req.Required,
		Pinned:      req.Pinned,
		HideEmpty:   req.HideEmpty,
		Visibility:  models.Visibility(req.Visibility),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, field.ListID)
	s.invalidate(workspaceID, field.ListID)
	respondData(c, http.StatusCreated, gin.H{"field": field, "workspace_id": workspaceID})
}

// handleUpdateField applies a partial metadata update to a field.
func (s *Server) handleUpdateField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	patch := workspace.FieldPatch{
		Name:        req.Name,
		Description: req.Description,
		Options:     req.Options,
		Currency:    req.Currency,
		Required:    req.Required,
		Pinned:      req.Pinned,
		HideEmpty:   req.HideEmpty,
	}
	if req.Type != nil {
		t := models.FieldType(*req.Type)
		patch.Type = &t
	}
	if req.Visibility != nil {
		v := models.Visibility(*req.Visibility)
		patch.Visibility = &v
	}

	field, err := s.svc.UpdateField(c.Request.Context(), actor(c), c.Param("id"), patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, field.ListID)
	s.invalidate(workspaceID, field.ListID)
	respondData(c, http.StatusOK, gin.H{"field": field, "workspace_id": workspaceID})
}

// handleDeleteField removes a field definition and its values.
func (s *Server) handleDeleteField(c *gin.Context) {
	field, err := s.svc.DeleteField(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, field.ListID)
	s.invalidate(workspaceID, field.ListID)
	respondData(c, http.StatusOK, gin.H{"field": field, "workspace_id": workspaceID})
}

// handleDuplicateField clones a field's metadata under a "(copy)" name.
func (s *Server) handleDuplicateField(c *gin.Context) {
	field, err := s.svc.DuplicateField(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindList, field.ListID)
	s.invalidate(workspaceID, field.ListID)
	respondData(c, http.StatusCreated, gin.H{"field": field, "workspace_id": workspaceID})
}

// handleSetValue upserts a task's raw value for one field.
func (s *Server) handleSetValue(c *gin.Context) {
	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	value, err := s.svc.SetValue(c.Request.Context(), actor(c), c.Param("id"), c.Param("fieldId"), req.Value)
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, listID, _ := s.svc.TaskWorkspace(c.Request.Context(), value.TaskID)
	s.invalidate(workspaceID, listID)
	respondData(c, http.StatusOK, gin.H{"value": value, "workspace_id": workspaceID})
}

// handleListFields returns a list's field definitions in creation order.
func (s *Server) handleListFields(c *gin.Context) {
	fields := s.svc.ListFields(c.Request.Context(), c.Param("id"))
	respondData(c, http.StatusOK, gin.H{"fields": fields})
}

// handleListValues returns a task's stored raw values.
func (s *Server) handleListValues(c *gin.Context) {
	values := s.svc.ListValues(c.Request.Context(), c.Param("id"))
	respondData(c, http.StatusOK, gin.H{"values": values})
}
