package workspace

import (
	"context"
	"log/slog"

	"taskdeck/internal/models"
)

// GetWorkspaceTree assembles the nested Space → Folder → List projection the
// UI renders, each space and list annotated with its ordered statuses.
// Spaces come newest first, folders and lists oldest first, statuses by
// order. The projection is side-effect-free and fails open: any fetch error
// is logged and an empty tree returned, never an error.
func (s *Service) GetWorkspaceTree(ctx context.Context, workspaceID string) models.WorkspaceTree {
	tree := models.WorkspaceTree{WorkspaceID: workspaceID, Spaces: []models.SpaceNode{}}

	spaces, err := s.store.ListSpaces(ctx, workspaceID)
	if err != nil {
		s.failOpen(workspaceID, "list spaces", err)
		return tree
	}

	for _, sp := range spaces {
		node := models.SpaceNode{
			Space:    sp,
			Folders:  []models.FolderNode{},
			Lists:    []models.ListNode{},
			Statuses: s.ListStatuses(ctx, models.KindSpace, sp.ID),
		}

		folders, err := s.store.ListFolders(ctx, sp.ID)
		if err != nil {
			s.failOpen(workspaceID, "list folders", err)
			folders = nil
		}
		byFolder := make(map[string]int, len(folders))
		for _, f := range folders {
			byFolder[f.ID] = len(node.Folders)
			node.Folders = append(node.Folders, models.FolderNode{Folder: f, Lists: []models.ListNode{}})
		}

		lists, err := s.store.ListLists(ctx, sp.ID)
		if err != nil {
			s.failOpen(workspaceID, "list lists", err)
			lists = nil
		}
		for _, l := range lists {
			ln := models.ListNode{List: l, Statuses: s.ListStatuses(ctx, models.KindList, l.ID)}
			if l.FolderID != nil {
				if i, ok := byFolder[*l.FolderID]; ok {
					node.Folders[i].Lists = append(node.Folders[i].Lists, ln)
					continue
				}
			}
			node.Lists = append(node.Lists, ln)
		}

		tree.Spaces = append(tree.Spaces, node)
	}

	return tree
}

func (s *Service) failOpen(workspaceID, op string, err error) {
	s.logger.Error("workspace tree read failed",
		slog.String("workspace_id", workspaceID),
		slog.String("op", op),
		slog.String("error", err.Error()))
}
