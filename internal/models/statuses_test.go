package models

import (
	"testing"

	"github.com/matryer/is"
)

func TestExpandTemplate(t *testing.T) {
	is := is.New(t)

	seeds, ok := ExpandTemplate("Scrum")
	is.True(ok)
	is.Equal(len(seeds), 6)
	is.Equal(seeds[0].Name, "Product Backlog")
	is.Equal(seeds[0].Category, CategoryNotStarted)
	is.Equal(seeds[5].Name, "Done")
	is.Equal(seeds[5].Category, CategoryCompleted)

	// not started always precedes active, active precedes completed
	rank := map[StatusCategory]int{CategoryNotStarted: 0, CategoryActive: 1, CategoryCompleted: 2}
	for name := range StatusTemplates {
		seeds, ok := ExpandTemplate(name)
		is.True(ok)
		last := -1
		for _, seed := range seeds {
			is.True(rank[seed.Category] >= last)
			last = rank[seed.Category]
		}
	}

	_, ok = ExpandTemplate("Waterfall")
	is.True(!ok)
}

func TestDisplayBuckets(t *testing.T) {
	is := is.New(t)

	statuses := []Status{
		{Name: "Backlog", Category: CategoryNotStarted},
		{Name: "Doing", Category: CategoryActive},
		{Name: "Done", Category: CategoryCompleted},
	}
	b := DisplayBuckets(statuses)

	is.Equal(len(b.NotStarted), 1)
	is.Equal(b.NotStarted[0].Name, "Backlog")

	// completed folds into the active column for the editor
	is.Equal(len(b.Active), 2)
	is.Equal(b.Active[0].Name, "Doing")
	is.Equal(b.Active[1].Name, "Done")

	// the fold is display-only; stored categories are untouched
	is.Equal(statuses[2].Category, CategoryCompleted)
}

func TestDisplayBuckets_EmptyInput(t *testing.T) {
	is := is.New(t)

	b := DisplayBuckets(nil)
	is.True(b.NotStarted != nil)
	is.True(b.Active != nil)
	is.Equal(len(b.NotStarted), 0)
	is.Equal(len(b.Active), 0)
}
