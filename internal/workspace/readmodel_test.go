package workspace

import (
	"context"
	"fmt"
	"testing"

	"github.com/matryer/is"

	"taskdeck/internal/models"
)

func TestWorkspaceTree_NestsFoldersAndLists(t *testing.T) {
	is := is.New(t)
	svc := newTestService(t)
	ctx := context.Background()

	w, err := svc.CreateWorkspace(ctx, owner, "Acme")
	is.NoErr(err)
	sp, err := svc.CreateSpace(ctx, owner, w.ID, "Marketing", "#f59e0b", "Megaphone")
	is.NoErr(err)
	folder, err := svc.CreateFolder(ctx, owner, sp.ID, "Campaigns")
	is.NoErr(err)
	foldered, err := svc.CreateList(ctx, owner, sp.ID, &folder.ID, "Q3 Launch")
	is.NoErr(err)
	loose, err := svc.CreateList(ctx, owner, sp.ID, nil, "Ideas")
	is.NoErr(err)

	seeds, err := svc.TemplateSeeds("Marketing")
	is.NoErr(err)
	_, err = svc.ReplaceStatuses(ctx, owner, models.KindSpace, sp.ID, seeds)
	is.NoErr(err)
	_, err = svc.ReplaceStatuses(ctx, owner, models.KindList, foldered.ID, []models.StatusSeed{
		{Name: "Drafting", Category: models.CategoryActive},
	})
	is.NoErr(err)

	tree := svc.GetWorkspaceTree(ctx, w.ID)
	is.Equal(tree.WorkspaceID, w.ID)
	is.Equal(len(tree.Spaces), 1)

	node := tree.Spaces[0]
	is.Equal(node.Name, "Marketing")
	is.Equal(len(node.Statuses), 5)
	is.Equal(node.Statuses[0].Name, "Planning")

	is.Equal(len(node.Folders), 1)
	is.Equal(node.Folders[0].Name, "Campaigns")
	is.Equal(len(node.Folders[0].Lists), 1)
	is.Equal(node.Folders[0].Lists[0].ID, foldered.ID)
	is.Equal(len(node.Folders[0].Lists[0].Statuses), 1)
	is.Equal(node.Folders[0].Lists[0].Statuses[0].Name, "Drafting")

	// the folderless list sits at space level with no statuses of its own
	is.Equal(len(node.Lists), 1)
	is.Equal(node.Lists[0].ID, loose.ID)
	is.Equal(len(node.Lists[0].Statuses), 0)
}

func TestWorkspaceTree_ListStatusesInOrder(t *testing.T) {
	is := is.New(t)
	svc := newTestService(t)
	ctx := context.Background()

	w, err := svc.CreateWorkspace(ctx, owner, "W1")
	is.NoErr(err)
	sp, err := svc.CreateSpace(ctx, owner, w.ID, "Marketing", "#3b82f6", "")
	is.NoErr(err)
	l, err := svc.CreateList(ctx, owner, sp.ID, nil, "Campaigns")
	is.NoErr(err)
	_, err = svc.ReplaceStatuses(ctx, owner, models.KindList, l.ID, []models.StatusSeed{
		{Name: "Backlog", Category: models.CategoryNotStarted},
		{Name: "Live", Category: models.CategoryActive},
	})
	is.NoErr(err)

	tree := svc.GetWorkspaceTree(ctx, w.ID)
	is.Equal(len(tree.Spaces), 1)
	is.Equal(tree.Spaces[0].Name, "Marketing")
	is.Equal(len(tree.Spaces[0].Lists), 1)

	campaigns := tree.Spaces[0].Lists[0]
	is.Equal(campaigns.Name, "Campaigns")
	is.Equal(len(campaigns.Statuses), 2)
	is.Equal(campaigns.Statuses[0].Name, "Backlog")
	is.Equal(campaigns.Statuses[1].Name, "Live")
}

func TestWorkspaceTree_EmptyWorkspace(t *testing.T) {
	is := is.New(t)
	svc := newTestService(t)
	ctx := context.Background()

	w, err := svc.CreateWorkspace(ctx, owner, "Acme")
	is.NoErr(err)

	tree := svc.GetWorkspaceTree(ctx, w.ID)
	is.Equal(tree.WorkspaceID, w.ID)
	is.Equal(len(tree.Spaces), 0)
	is.True(tree.Spaces != nil)
}

func TestWorkspaceTree_UnknownWorkspaceFailsOpen(t *testing.T) {
	is := is.New(t)
	svc := newTestService(t)

	tree := svc.GetWorkspaceTree(context.Background(), "missing")
	is.Equal(tree.WorkspaceID, "missing")
	is.Equal(len(tree.Spaces), 0)
}

func TestWorkspaceTree_SiblingsKeepCreationOrder(t *testing.T) {
	is := is.New(t)
	svc, w, sp, _ := newTestTree(t)
	ctx := context.Background()

	// back-to-back creates land inside the same one-second timestamp, so
	// ordering must not depend on created_at alone
	var names []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("L%02d", i)
		_, err := svc.CreateList(ctx, owner, sp.ID, nil, name)
		is.NoErr(err)
		names = append(names, name)
	}

	tree := svc.GetWorkspaceTree(ctx, w.ID)
	is.Equal(len(tree.Spaces), 1)
	lists := tree.Spaces[0].Lists
	is.Equal(len(lists), len(names)+1) // the fixture list comes first
	for i, name := range names {
		is.Equal(lists[i+1].Name, name)
	}
}

func TestListFields_CreationOrder(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	var names []string
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("F%02d", i)
		_, err := svc.CreateField(ctx, owner, l.ID, name, models.FieldText, FieldMetadata{})
		is.NoErr(err)
		names = append(names, name)
	}

	fields := svc.ListFields(ctx, l.ID)
	is.Equal(len(fields), len(names))
	for i, name := range names {
		is.Equal(fields[i].Name, name)
	}
}

func TestWorkspaceTree_MutationVisibleOnNextRead(t *testing.T) {
	is := is.New(t)
	svc, w, sp, l := newTestTree(t)
	ctx := context.Background()

	_, err := svc.RenameNode(ctx, owner, models.KindList, l.ID, "Renamed")
	is.NoErr(err)
	_, err = svc.DeleteNode(ctx, owner, models.KindSpace, sp.ID)
	is.NoErr(err)

	tree := svc.GetWorkspaceTree(ctx, w.ID)
	is.Equal(len(tree.Spaces), 0)
}
