package workspace

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// FieldMetadata carries the optional settings of a new custom field.
type FieldMetadata struct {
	Description string
	Options     string
	Currency    string
	Required    bool
	Pinned      bool
	HideEmpty   bool
	Visibility  models.Visibility
}

// FieldPatch is a partial update; nil members are left untouched.
type FieldPatch struct {
	Name        *string
	Description *string
	Type        *models.FieldType
	Options     *string
	Currency    *string
	Required    *bool
	Pinned      *bool
	HideEmpty   *bool
	Visibility  *models.Visibility
}

// CreateField defines a new custom field on a list. SELECT options are an
// opaque serialized blob; CURRENCY fields default their currency code when
// omitted.
func (s *Service) CreateField(ctx context.Context, actorID, listID, name string, ftype models.FieldType, meta FieldMetadata) (models.CustomField, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return models.CustomField{}, errPersistence("list lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, list.ID); err != nil {
		return models.CustomField{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.CustomField{}, errValidation("field name is required")
	}
	if _, ok := models.ValidFieldTypes[ftype]; !ok {
		return models.CustomField{}, errValidation("unrecognized field type")
	}
	if meta.Visibility == "" {
		meta.Visibility = models.VisibilityAll
	}
	if _, ok := models.ValidVisibilities[meta.Visibility]; !ok {
		return models.CustomField{}, errValidation("unrecognized visibility")
	}
	if ftype == models.FieldCurrency && meta.Currency == "" {
		meta.Currency = models.DefaultCurrency
	}

	f, err := s.store.CreateField(ctx, models.CustomField{
		ID:          uuid.New().String(),
		ListID:      listID,
		Name:        name,
		Description: meta.Description,
		Type:        ftype,
		Options:     meta.Options,
		Currency:    meta.Currency,
		Required:    meta.Required,
		Pinned:      meta.Pinned,
		HideEmpty:   meta.HideEmpty,
		Visibility:  meta.Visibility,
		CreatedBy:   actorID,
	})
	if err != nil {
		return models.CustomField{}, errPersistence("create field", err)
	}
	return f, nil
}

// UpdateField applies a partial metadata update. Changing the type does not
// touch stored values; they stay raw strings and are reinterpreted against
// the new type at read time.
func (s *Service) UpdateField(ctx context.Context, actorID, fieldID string, patch FieldPatch) (models.CustomField, error) {
	f, err := s.store.GetField(ctx, fieldID)
	if err != nil {
		return models.CustomField{}, errPersistence("field lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, f.ListID); err != nil {
		return models.CustomField{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.CustomField{}, errValidation("field name is required")
		}
		f.Name = name
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Type != nil {
		if _, ok := models.ValidFieldTypes[*patch.Type]; !ok {
			return models.CustomField{}, errValidation("unrecognized field type")
		}
		f.Type = *patch.Type
	}
	if patch.Options != nil {
		f.Options = *patch.Options
	}
	if patch.Currency != nil {
		f.Currency = *patch.Currency
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.Pinned != nil {
		f.Pinned = *patch.Pinned
	}
	if patch.HideEmpty != nil {
		f.HideEmpty = *patch.HideEmpty
	}
	if patch.Visibility != nil {
		if _, ok := models.ValidVisibilities[*patch.Visibility]; !ok {
			return models.CustomField{}, errValidation("unrecognized visibility")
		}
		f.Visibility = *patch.Visibility
	}

	updated, err := s.store.UpdateField(ctx, f)
	if err != nil {
		return models.CustomField{}, errPersistence("update field", err)
	}
	return updated, nil
}

// DeleteField removes a field definition and cascades away every value row
// referencing it.
func (s *Service) DeleteField(ctx context.Context, actorID, fieldID string) (models.CustomField, error) {
	f, err := s.store.GetField(ctx, fieldID)
	if err != nil {
		return models.CustomField{}, errPersistence("field lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, f.ListID); err != nil {
		return models.CustomField{}, err
	}
	if err := s.store.DeleteField(ctx, fieldID); err != nil {
		return models.CustomField{}, errPersistence("delete field", err)
	}
	return f, nil
}

// DuplicateField clones a field's metadata under a "(copy)" name. The new
// field belongs to the acting user and starts without any values.
func (s *Service) DuplicateField(ctx context.Context, actorID, fieldID string) (models.CustomField, error) {
	original, err := s.store.GetField(ctx, fieldID)
	if err != nil {
		return models.CustomField{}, errPersistence("field lookup", err)
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, original.ListID); err != nil {
		return models.CustomField{}, err
	}

	dup := original
	dup.ID = uuid.New().String()
	dup.Name = original.Name + " (copy)"
	dup.CreatedBy = actorID

	created, err := s.store.CreateField(ctx, dup)
	if err != nil {
		return models.CustomField{}, errPersistence("duplicate field", err)
	}
	return created, nil
}

// SetValue upserts the raw string value for a (task, field) pair. The field
// must belong to the task's list; a foreign field is rejected rather than
// silently stored. No type coercion happens here; formatting is the
// presentation boundary's job.
func (s *Service) SetValue(ctx context.Context, actorID, taskID, fieldID, rawValue string) (models.CustomFieldValue, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return models.CustomFieldValue{}, errPersistence("task lookup", err)
	}
	field, err := s.store.GetField(ctx, fieldID)
	if err != nil {
		return models.CustomFieldValue{}, errPersistence("field lookup", err)
	}
	if field.ListID != task.ListID {
		return models.CustomFieldValue{}, errValidation("field does not belong to the task's list")
	}
	if _, err := s.resolveNode(ctx, actorID, models.KindList, task.ListID); err != nil {
		return models.CustomFieldValue{}, err
	}

	v, err := s.store.UpsertValue(ctx, models.CustomFieldValue{
		ID:      uuid.New().String(),
		TaskID:  taskID,
		FieldID: fieldID,
		Value:   rawValue,
	})
	if err != nil {
		return models.CustomFieldValue{}, errPersistence("set value", err)
	}
	return v, nil
}

// ListFields returns a list's field definitions in creation order, failing
// open to an empty set on fetch errors.
func (s *Service) ListFields(ctx context.Context, listID string) []models.CustomField {
	out, err := s.store.ListFields(ctx, listID)
	if err != nil {
		s.logger.Error("list fields failed", slog.String("list_id", listID), slog.String("error", err.Error()))
		return []models.CustomField{}
	}
	if out == nil {
		out = []models.CustomField{}
	}
	return out
}

// ListValues returns a task's stored values, failing open to an empty set.
func (s *Service) ListValues(ctx context.Context, taskID string) []models.CustomFieldValue {
	out, err := s.store.ListValues(ctx, taskID)
	if err != nil {
		s.logger.Error("list values failed", slog.String("task_id", taskID), slog.String("error", err.Error()))
		return []models.CustomFieldValue{}
	}
	if out == nil {
		out = []models.CustomFieldValue{}
	}
	return out
}
