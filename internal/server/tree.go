package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/workspace"
)

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type createSpaceRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

type createFolderRequest struct {
	SpaceID string `json:"space_id"`
	Name    string `json:"name"`
}

type createListRequest struct {
	SpaceID  string  `json:"space_id"`
	FolderID *string `json:"folder_id"`
	Name     string  `json:"name"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type colorIconRequest struct {
	Color string  `json:"color"`
	Icon  *string `json:"icon"`
}

// handleListWorkspaces returns the acting user's workspaces.
func (s *Server) handleListWorkspaces(c *gin.Context) {
	workspaces := s.svc.ListWorkspaces(c.Request.Context(), actor(c))
	respondData(c, http.StatusOK, gin.H{"workspaces": workspaces})
}

// handleCreateWorkspace creates a workspace owned by the acting user.
func (s *Server) handleCreateWorkspace(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	w, err := s.svc.CreateWorkspace(c.Request.Context(), actor(c), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"workspace": w})
}

// handleAddMember grants another user membership in a workspace.
func (s *Server) handleAddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleMember
	}
	if err := s.svc.AddMember(c.Request.Context(), actor(c), c.Param("id"), req.UserID, role); err != nil {
		s.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"workspace_id": c.Param("id"), "user_id": req.UserID})
}

// handleWorkspaceTree returns the nested tree projection for a workspace.
func (s *Server) handleWorkspaceTree(c *gin.Context) {
	tree := s.svc.GetWorkspaceTree(c.Request.Context(), c.Param("id"))
	respondData(c, http.StatusOK, gin.H{"tree": tree})
}

// handleCreateSpace adds a space at the workspace root.
func (s *Server) handleCreateSpace(c *gin.Context) {
	var req createSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	sp, err := s.svc.CreateSpace(c.Request.Context(), actor(c), req.WorkspaceID, req.Name, req.Color, req.Icon)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.invalidate(sp.WorkspaceID, sp.ID)
	respondData(c, http.StatusCreated, gin.H{"space": sp, "workspace_id": sp.WorkspaceID})
}

// handleCreateFolder adds a folder under a space.
func (s *Server) handleCreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	f, err := s.svc.CreateFolder(c.Request.Context(), actor(c), req.SpaceID, req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindSpace, f.SpaceID)
	s.invalidate(workspaceID, f.SpaceID)
	respondData(c, http.StatusCreated, gin.H{"folder": f, "workspace_id": workspaceID})
}

// handleCreateList adds a list under a space or one of its folders.
func (s *Server) handleCreateList(c *gin.Context) {
	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	l, err := s.svc.CreateList(c.Request.Context(), actor(c), req.SpaceID, req.FolderID, req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	workspaceID, _ := s.svc.NodeWorkspace(c.Request.Context(), models.KindSpace, l.SpaceID)
	s.invalidate(workspaceID, l.SpaceID)
	respondData(c, http.StatusCreated, gin.H{"list": l, "workspace_id": workspaceID})
}

// handleRenameNode renames a space, folder or list.
func (s *Server) handleRenameNode(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	node, err := s.svc.RenameNode(c.Request.Context(), actor(c), kind, c.Param("id"), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.invalidate(node.WorkspaceID, node.ID)
	respondData(c, http.StatusOK, gin.H{"node": node})
}

// handleDeleteNode removes a node and its structural children.
func (s *Server) handleDeleteNode(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	node, err := s.svc.DeleteNode(c.Request.Context(), actor(c), kind, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.invalidate(node.WorkspaceID, "")
	respondData(c, http.StatusOK, gin.H{"node": node})
}

// handleToggleFavorite flips the favorite flag.
func (s *Server) handleToggleFavorite(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	node, err := s.svc.ToggleFavorite(c.Request.Context(), actor(c), kind, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.invalidate(node.WorkspaceID, node.ID)
	respondData(c, http.StatusOK, gin.H{"node": node})
}

// handleUpdateColorIcon overwrites color and optionally icon.
func (s *Server) handleUpdateColorIcon(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	var req colorIconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, &workspace.Error{Kind: workspace.KindValidation, Message: "invalid request body"})
		return
	}

	node, err := s.svc.UpdateColorIcon(c.Request.Context(), actor(c), kind, c.Param("id"), req.Color, req.Icon)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.invalidate(node.WorkspaceID, node.ID)
	respondData(c, http.StatusOK, gin.H{"node": node})
}
