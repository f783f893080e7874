package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/notify"
	"taskdeck/internal/workspace"
)

// Server provides the HTTP surface of the workspace engine.
type Server struct {
	engine    *gin.Engine
	svc       *workspace.Service
	hub       *notify.Hub
	logger    *slog.Logger
	jwtSecret []byte
}

// New constructs the HTTP server with routes and middleware configured.
func New(svc *workspace.Service, hub *notify.Hub, logger *slog.Logger, jwtSecret []byte) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	srv := &Server{
		engine:    router,
		svc:       svc,
		hub:       hub,
		logger:    logger,
		jwtSecret: jwtSecret,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the command and query handlers together. Queries are
// open at this layer; every command goes through the access token middleware
// and then the engine's membership guard.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		// Queries fail open at the engine level and need no acting user.
		api.GET("/workspaces/:id/tree", s.handleWorkspaceTree)
		api.GET("/statuses/:scope/:id", s.handleListStatuses)
		api.GET("/status-templates/:name", s.handleStatusTemplate)
		api.GET("/lists/:id/fields", s.handleListFields)
		api.GET("/lists/:id/tasks", s.handleListTasks)
		api.GET("/tasks/:id/values", s.handleListValues)
		api.GET("/tasks/:id/subtasks", s.handleListSubtasks)
		api.GET("/tasks/:id/comments", s.handleListComments)

		authed := api.Group("", s.accessToken())
		{
			authed.GET("/workspaces", s.handleListWorkspaces)
			authed.POST("/workspaces", s.handleCreateWorkspace)
			authed.POST("/workspaces/:id/members", s.handleAddMember)

			authed.POST("/spaces", s.handleCreateSpace)
			authed.POST("/folders", s.handleCreateFolder)
			authed.POST("/lists", s.handleCreateList)

			authed.PUT("/nodes/:kind/:id/name", s.handleRenameNode)
			authed.DELETE("/nodes/:kind/:id", s.handleDeleteNode)
			authed.POST("/nodes/:kind/:id/favorite", s.handleToggleFavorite)
			authed.PUT("/nodes/:kind/:id/color", s.handleUpdateColorIcon)

			authed.PUT("/statuses/:scope/:id", s.handleReplaceStatuses)

			authed.POST("/lists/:id/fields", s.handleCreateField)
			authed.PATCH("/fields/:id", s.handleUpdateField)
			authed.DELETE("/fields/:id", s.handleDeleteField)
			authed.POST("/fields/:id/duplicate", s.handleDuplicateField)
			authed.PUT("/tasks/:id/values/:fieldId", s.handleSetValue)

			authed.POST("/lists/:id/tasks", s.handleCreateTask)
			authed.PATCH("/tasks/:id", s.handleUpdateTask)
			authed.DELETE("/tasks/:id", s.handleDeleteTask)
			authed.POST("/tasks/:id/comments", s.handleCreateComment)
		}
	}

	s.engine.GET("/ws", s.handleSubscribe)
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError logs the failure and returns the tagged envelope.
func (s *Server) respondError(c *gin.Context, err error) {
	kind := workspace.KindOf(err)
	s.logger.Error("command failed",
		slog.String("path", c.FullPath()),
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()))
	c.JSON(statusFor(kind), gin.H{"ok": false, "error": kind, "message": err.Error()})
}

// respondData wraps a payload in the success envelope.
func respondData(c *gin.Context, status int, payload any) {
	c.JSON(status, gin.H{"ok": true, "data": payload})
}

func statusFor(kind workspace.Kind) int {
	switch kind {
	case workspace.KindNotAuthorized:
		return http.StatusUnauthorized
	case workspace.KindNotFound:
		return http.StatusNotFound
	case workspace.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseKind converts the :kind path parameter to a node kind tag.
func parseKind(c *gin.Context) (models.NodeKind, bool) {
	kind := models.NodeKind(c.Param("kind"))
	if _, ok := models.ValidNodeKinds[kind]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": workspace.KindValidation, "message": "unrecognized node kind"})
		return "", false
	}
	return kind, true
}

// invalidate broadcasts a precise refetch hint for the mutated subtree.
func (s *Server) invalidate(workspaceID, scopeID string) {
	if s.hub == nil || workspaceID == "" {
		return
	}
	s.hub.Invalidate(workspaceID, scopeID)
}

// actor returns the acting user id placed by the access token middleware.
// Unauthenticated paths yield the empty string and the engine fails closed.
func actor(c *gin.Context) string {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
