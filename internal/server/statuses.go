package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/workspace"
)

type replaceStatusesRequest struct {
	Statuses []models.StatusSeed `json:"statuses"`
}

func parseScope(c *gin.Context) (models.NodeKind, bool) {
	scope := models.NodeKind(c.Param("scope"))
	if scope != models.KindSpace && scope != models.KindList {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": workspace.KindValidation, "message": "status scope must be a space or a list"})
		return "", false
	}
	return scope, true
}

// handleReplaceStatuses swaps the full status set of a space or list.
func (s *Server) handleReplaceStatuses(c *gin.Context) {
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	var req replaceStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	statuses, err := s.svc.ReplaceStatuses(c.Request.Context(), actor(c), scope, c.Param("id"), req.Statuses)
	if err != nil {
		s.respondError(c, err)
		return
	}

	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), scope, c.Param("id"))
	s.invalidate(workspaceID, c.Param("id"))
	respondData(c, http.StatusOK, gin.H{
		"statuses":     statuses,
		"workspace_id": workspaceID,
		"scope_id":     c.Param("id"),
	})
}

// handleListStatuses returns a scope's ordered statuses along with the
// two-bucket partition the status editor renders.
func (s *Server) handleListStatuses(c *gin.Context) {
	scope, ok := parseScope(c)
	if !ok {
		return
	}

	statuses := s.svc.ListStatuses(c.Request.Context(), scope, c.Param("id"))
	respondData(c, http.StatusOK, gin.H{
		"statuses": statuses,
		"buckets":  models.DisplayBuckets(statuses),
	})
}

// handleStatusTemplate expands a named template into the seed list a
// replace call accepts. Nothing is persisted.
func (s *Server) handleStatusTemplate(c *gin.Context) {
	seeds, err := s.svc.TemplateSeeds(c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"statuses": seeds})
}
