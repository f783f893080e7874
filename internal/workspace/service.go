package workspace

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"taskdeck/internal/models"
	"taskdeck/internal/storage/sqlite"
)

// Service is the workspace tree engine: structural mutations, status sets,
// custom fields and the read model, all behind the membership guard. It is
// stateless between requests; the persisted tree is the only shared state.
type Service struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// New constructs the engine around an open store.
func New(store *sqlite.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// authorize is the guard in front of every mutation. It fails closed: an
// empty actor or a missing membership row both come back NotAuthorized.
// Reads never call it; read-side access control is the caller's concern.
func (s *Service) authorize(ctx context.Context, actorID, workspaceID string) error {
	if actorID == "" {
		return errNotAuthorized()
	}
	ok, err := s.store.IsMember(ctx, actorID, workspaceID)
	if err != nil {
		return errPersistence("membership check failed", err)
	}
	if !ok {
		return errNotAuthorized()
	}
	return nil
}

// CreateWorkspace creates a workspace owned by the actor, who becomes its
// first member with the OWNER role.
func (s *Service) CreateWorkspace(ctx context.Context, actorID, name string) (models.Workspace, error) {
	if actorID == "" {
		return models.Workspace{}, errNotAuthorized()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Workspace{}, errValidation("workspace name is required")
	}

	w, err := s.store.CreateWorkspace(ctx, models.Workspace{
		ID:      uuid.New().String(),
		Name:    name,
		OwnerID: actorID,
	})
	if err != nil {
		return models.Workspace{}, errPersistence("create workspace", err)
	}
	return w, nil
}

// AddMember grants a user membership in a workspace. Only existing members
// may add others.
func (s *Service) AddMember(ctx context.Context, actorID, workspaceID, userID string, role models.Role) error {
	if err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return err
	}
	if userID == "" {
		return errValidation("user id is required")
	}
	switch role {
	case models.RoleOwner, models.RoleAdmin, models.RoleMember, models.RoleGuest:
	default:
		return errValidation("unrecognized role")
	}
	if err := s.store.AddMember(ctx, models.WorkspaceMember{UserID: userID, WorkspaceID: workspaceID, Role: role}); err != nil {
		return errPersistence("add member", err)
	}
	return nil
}

// NodeWorkspace resolves the workspace owning a node, so transports can
// attach precise invalidation identity to command results.
func (s *Service) NodeWorkspace(ctx context.Context, kind models.NodeKind, id string) (string, error) {
	workspaceID, err := s.store.WorkspaceIDForNode(ctx, kind, id)
	if err != nil {
		return "", errPersistence("resolve node", err)
	}
	return workspaceID, nil
}

// ListWorkspaces returns the actor's workspaces. Fails open to an empty
// slice like the other read paths.
func (s *Service) ListWorkspaces(ctx context.Context, actorID string) []models.Workspace {
	out, err := s.store.ListWorkspaces(ctx, actorID)
	if err != nil {
		s.logger.Error("list workspaces failed", slog.String("user", actorID), slog.String("error", err.Error()))
		return []models.Workspace{}
	}
	if out == nil {
		out = []models.Workspace{}
	}
	return out
}
