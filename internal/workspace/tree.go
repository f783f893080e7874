package workspace

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// Node identifies a mutated tree node together with its owning workspace,
// so callers can invalidate exactly the affected subtree instead of
// reloading everything.
type Node struct {
	Kind        models.NodeKind `json:"kind"`
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	IsFavorite  bool            `json:"is_favorite,omitempty"`
}

// resolveNode validates the kind tag and walks the node up to its workspace,
// then runs the membership guard. Every generic node mutation starts here.
func (s *Service) resolveNode(ctx context.Context, actorID string, kind models.NodeKind, id string) (Node, error) {
	if _, ok := models.ValidNodeKinds[kind]; !ok {
		return Node{}, errValidation("unrecognized node kind")
	}
	workspaceID, err := s.store.WorkspaceIDForNode(ctx, kind, id)
	if err != nil {
		return Node{}, errPersistence("resolve node", err)
	}
	if err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return Node{}, err
	}
	return Node{Kind: kind, ID: id, WorkspaceID: workspaceID}, nil
}

// CreateSpace adds a space at the root of a workspace.
func (s *Service) CreateSpace(ctx context.Context, actorID, workspaceID, name, color, icon string) (models.Space, error) {
	if err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return models.Space{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Space{}, errValidation("space name is required")
	}
	if _, err := s.store.GetWorkspace(ctx, workspaceID); err != nil {
		return models.Space{}, errPersistence("workspace lookup", err)
	}

	sp, err := s.store.CreateSpace(ctx, models.Space{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       color,
		Icon:        icon,
	})
	if err != nil {
		return models.Space{}, errPersistence("create space", err)
	}
	return sp, nil
}

// CreateFolder adds a folder under a space.
func (s *Service) CreateFolder(ctx context.Context, actorID, spaceID, name string) (models.Folder, error) {
	sp, err := s.store.GetSpace(ctx, spaceID)
	if err != nil {
		return models.Folder{}, errPersistence("space lookup", err)
	}
	if err := s.authorize(ctx, actorID, sp.WorkspaceID); err != nil {
		return models.Folder{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Folder{}, errValidation("folder name is required")
	}

	f, err := s.store.CreateFolder(ctx, models.Folder{
		ID:      uuid.New().String(),
		SpaceID: spaceID,
		Name:    name,
	})
	if err != nil {
		return models.Folder{}, errPersistence("create folder", err)
	}
	return f, nil
}

// CreateList adds a list under a space, either directly or inside one of the
// space's folders. A folder from another space is rejected.
func (s *Service) CreateList(ctx context.Context, actorID, spaceID string, folderID *string, name string) (models.List, error) {
	sp, err := s.store.GetSpace(ctx, spaceID)
	if err != nil {
		return models.List{}, errPersistence("space lookup", err)
	}
	if err := s.authorize(ctx, actorID, sp.WorkspaceID); err != nil {
		return models.List{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.List{}, errValidation("list name is required")
	}
	if folderID != nil && *folderID != "" {
		folder, err := s.store.GetFolder(ctx, *folderID)
		if err != nil {
			return models.List{}, errPersistence("folder lookup", err)
		}
		if folder.SpaceID != spaceID {
			return models.List{}, errNotFound("folder in this space")
		}
	} else {
		folderID = nil
	}

	l, err := s.store.CreateList(ctx, models.List{
		ID:       uuid.New().String(),
		SpaceID:  spaceID,
		FolderID: folderID,
		Name:     name,
	})
	if err != nil {
		return models.List{}, errPersistence("create list", err)
	}
	return l, nil
}

// RenameNode renames a space, folder or list. Whitespace-only names are
// rejected before anything is written.
func (s *Service) RenameNode(ctx context.Context, actorID string, kind models.NodeKind, id, name string) (Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Node{}, errValidation("name is required")
	}
	node, err := s.resolveNode(ctx, actorID, kind, id)
	if err != nil {
		return Node{}, err
	}
	if err := s.store.RenameNode(ctx, kind, id, name); err != nil {
		return Node{}, errPersistence("rename", err)
	}
	return node, nil
}

// DeleteNode removes a node and everything structurally beneath it: folders
// take their lists along, spaces take folders, lists, statuses, custom
// fields, tasks and values.
func (s *Service) DeleteNode(ctx context.Context, actorID string, kind models.NodeKind, id string) (Node, error) {
	node, err := s.resolveNode(ctx, actorID, kind, id)
	if err != nil {
		return Node{}, err
	}
	if err := s.store.DeleteNode(ctx, kind, id); err != nil {
		return Node{}, errPersistence("delete", err)
	}
	return node, nil
}

// ToggleFavorite reads the current flag and writes its negation. Two racing
// togglers resolve last-write-wins; the UI reconciles on next read.
func (s *Service) ToggleFavorite(ctx context.Context, actorID string, kind models.NodeKind, id string) (Node, error) {
	node, err := s.resolveNode(ctx, actorID, kind, id)
	if err != nil {
		return Node{}, err
	}
	current, err := s.store.GetNodeFavorite(ctx, kind, id)
	if err != nil {
		return Node{}, errPersistence("read favorite", err)
	}
	if err := s.store.SetNodeFavorite(ctx, kind, id, !current); err != nil {
		return Node{}, errPersistence("write favorite", err)
	}
	node.IsFavorite = !current
	return node, nil
}

// UpdateColorIcon overwrites a node's color, and its icon when one is given.
// Icon names are not validated; an unresolvable icon degrades to no icon at
// render time.
func (s *Service) UpdateColorIcon(ctx context.Context, actorID string, kind models.NodeKind, id, color string, icon *string) (Node, error) {
	if strings.TrimSpace(color) == "" {
		return Node{}, errValidation("color is required")
	}
	node, err := s.resolveNode(ctx, actorID, kind, id)
	if err != nil {
		return Node{}, err
	}
	if icon != nil {
		err = s.store.UpdateNodeColorIcon(ctx, kind, id, color, *icon)
	} else {
		err = s.store.UpdateNodeColor(ctx, kind, id, color)
	}
	if err != nil {
		return Node{}, errPersistence("update color", err)
	}
	return node, nil
}
