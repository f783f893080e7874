package workspace

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"taskdeck/internal/models"
)

func TestReplaceStatuses_OrderMatchesPosition(t *testing.T) {
	is := is.New(t)
	svc, _, sp, _ := newTestTree(t)
	ctx := context.Background()

	seeds := []models.StatusSeed{
		{Name: "Backlog", Color: "#94a3b8", Category: models.CategoryNotStarted},
		{Name: "Doing", Color: "#3b82f6", Category: models.CategoryActive},
		{Name: "Done", Color: "#10b981", Category: models.CategoryCompleted},
	}
	persisted, err := svc.ReplaceStatuses(ctx, owner, models.KindSpace, sp.ID, seeds)
	is.NoErr(err)
	is.Equal(len(persisted), 3)
	for i, st := range persisted {
		is.Equal(st.Order, i)
		is.Equal(st.Name, seeds[i].Name)
		is.Equal(st.Category, seeds[i].Category)
	}

	// a fresh read comes back in the same order
	listed := svc.ListStatuses(ctx, models.KindSpace, sp.ID)
	is.Equal(len(listed), 3)
	for i, st := range listed {
		is.Equal(st.Order, i)
		is.Equal(st.Name, seeds[i].Name)
	}
}

func TestReplaceStatuses_SwapsTheWholeSet(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	first := []models.StatusSeed{
		{Name: "TODO", Category: models.CategoryNotStarted},
		{Name: "DONE", Category: models.CategoryCompleted},
	}
	_, err := svc.ReplaceStatuses(ctx, owner, models.KindList, l.ID, first)
	is.NoErr(err)

	second := []models.StatusSeed{{Name: "Only", Category: models.CategoryActive}}
	persisted, err := svc.ReplaceStatuses(ctx, owner, models.KindList, l.ID, second)
	is.NoErr(err)
	is.Equal(len(persisted), 1)
	is.Equal(persisted[0].Name, "Only")

	listed := svc.ListStatuses(ctx, models.KindList, l.ID)
	is.Equal(len(listed), 1)
	is.Equal(listed[0].Name, "Only")
}

func TestReplaceStatuses_EmptySetIsLegal(t *testing.T) {
	is := is.New(t)
	svc, _, sp, _ := newTestTree(t)
	ctx := context.Background()

	_, err := svc.ReplaceStatuses(ctx, owner, models.KindSpace, sp.ID, []models.StatusSeed{
		{Name: "TODO", Category: models.CategoryNotStarted},
	})
	is.NoErr(err)

	persisted, err := svc.ReplaceStatuses(ctx, owner, models.KindSpace, sp.ID, nil)
	is.NoErr(err)
	is.Equal(len(persisted), 0)
	is.True(persisted != nil)
	is.Equal(len(svc.ListStatuses(ctx, models.KindSpace, sp.ID)), 0)
}

func TestReplaceStatuses_Validation(t *testing.T) {
	svc, w, sp, _ := newTestTree(t)
	ctx := context.Background()

	t.Run("folder scope is rejected", func(t *testing.T) {
		is := is.New(t)
		folder, err := svc.CreateFolder(ctx, owner, sp.ID, "Campaigns")
		is.NoErr(err)
		_, err = svc.ReplaceStatuses(ctx, owner, models.KindFolder, folder.ID, nil)
		is.Equal(KindOf(err), KindValidation)
	})

	t.Run("workspace scope is rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.ReplaceStatuses(ctx, owner, "workspace", w.ID, nil)
		is.Equal(KindOf(err), KindValidation)
	})

	t.Run("nameless status is rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.ReplaceStatuses(ctx, owner, models.KindSpace, sp.ID, []models.StatusSeed{
			{Name: "", Category: models.CategoryActive},
		})
		is.Equal(KindOf(err), KindValidation)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.ReplaceStatuses(ctx, owner, models.KindSpace, sp.ID, []models.StatusSeed{
			{Name: "X", Category: "blocked"},
		})
		is.Equal(KindOf(err), KindValidation)
	})

	t.Run("outsider is turned away", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.ReplaceStatuses(ctx, outsider, models.KindSpace, sp.ID, nil)
		is.Equal(KindOf(err), KindNotAuthorized)
	})
}

func TestTemplateSeeds(t *testing.T) {
	is := is.New(t)
	svc := newTestService(t)

	seeds, err := svc.TemplateSeeds("Kanban")
	is.NoErr(err)
	is.Equal(len(seeds), 5)
	is.Equal(seeds[0].Name, "Backlog")
	is.Equal(seeds[0].Category, models.CategoryNotStarted)
	is.Equal(seeds[4].Name, "Done")
	is.Equal(seeds[4].Category, models.CategoryCompleted)

	_, err = svc.TemplateSeeds("Waterfall")
	is.Equal(KindOf(err), KindValidation)
}

func TestTemplateSeeds_FeedReplaceDirectly(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	seeds, err := svc.TemplateSeeds("Marketing")
	is.NoErr(err)
	persisted, err := svc.ReplaceStatuses(ctx, owner, models.KindList, l.ID, seeds)
	is.NoErr(err)
	is.Equal(len(persisted), 5)
	is.Equal(persisted[0].Name, "Planning")
	is.Equal(persisted[4].Name, "Published")
}
