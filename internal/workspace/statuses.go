package workspace

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// ReplaceStatuses swaps the full status set of a space or list. The new set
// is persisted with order equal to array position; an empty set is legal and
// leaves the scope with zero statuses. Duplicate names are allowed; callers
// match by name, so duplicates are their ambiguity to own.
func (s *Service) ReplaceStatuses(ctx context.Context, actorID string, scope models.NodeKind, scopeID string, seeds []models.StatusSeed) ([]models.Status, error) {
	if scope != models.KindSpace && scope != models.KindList {
		return nil, errValidation("status scope must be a space or a list")
	}
	if _, err := s.resolveNode(ctx, actorID, scope, scopeID); err != nil {
		return nil, err
	}

	statuses := make([]models.Status, 0, len(seeds))
	for _, seed := range seeds {
		if seed.Name == "" {
			return nil, errValidation("status name is required")
		}
		if _, ok := models.ValidCategories[seed.Category]; !ok {
			return nil, errValidation("unrecognized status category")
		}
		statuses = append(statuses, models.Status{
			ID:       uuid.New().String(),
			Name:     seed.Name,
			Color:    seed.Color,
			Icon:     seed.Icon,
			Category: seed.Category,
		})
	}

	persisted, err := s.store.ReplaceStatuses(ctx, scope, scopeID, statuses)
	if err != nil {
		return nil, errPersistence("replace statuses", err)
	}
	if persisted == nil {
		persisted = []models.Status{}
	}
	return persisted, nil
}

// ListStatuses returns a scope's ordered statuses, failing open to an empty
// set on fetch errors.
func (s *Service) ListStatuses(ctx context.Context, scope models.NodeKind, scopeID string) []models.Status {
	out, err := s.store.ListStatuses(ctx, scope, scopeID)
	if err != nil {
		s.logger.Error("list statuses failed",
			slog.String("scope", string(scope)),
			slog.String("scope_id", scopeID),
			slog.String("error", err.Error()))
		return []models.Status{}
	}
	if out == nil {
		out = []models.Status{}
	}
	return out
}

// TemplateSeeds expands a named status template into the flat ordered seed
// list a ReplaceStatuses call expects. Nothing is persisted here.
func (s *Service) TemplateSeeds(name string) ([]models.StatusSeed, error) {
	seeds, ok := models.ExpandTemplate(name)
	if !ok {
		return nil, errValidation("unknown status template")
	}
	return seeds, nil
}
