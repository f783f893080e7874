package workspace

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"taskdeck/internal/models"
)

func TestCreateField(t *testing.T) {
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	t.Run("currency fields default their code", func(t *testing.T) {
		is := is.New(t)
		f, err := svc.CreateField(ctx, owner, l.ID, "Budget", models.FieldCurrency, FieldMetadata{})
		is.NoErr(err)
		is.Equal(f.Currency, models.DefaultCurrency)
		is.Equal(f.Visibility, models.VisibilityAll)
		is.Equal(f.CreatedBy, owner)
	})

	t.Run("explicit currency survives", func(t *testing.T) {
		is := is.New(t)
		f, err := svc.CreateField(ctx, owner, l.ID, "Cost", models.FieldCurrency, FieldMetadata{Currency: "USD"})
		is.NoErr(err)
		is.Equal(f.Currency, "USD")
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.CreateField(ctx, owner, l.ID, "X", "GEOLOCATION", FieldMetadata{})
		is.Equal(KindOf(err), KindValidation)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.CreateField(ctx, owner, l.ID, "  ", models.FieldText, FieldMetadata{})
		is.Equal(KindOf(err), KindValidation)
	})

	t.Run("outsider is turned away", func(t *testing.T) {
		is := is.New(t)
		_, err := svc.CreateField(ctx, outsider, l.ID, "X", models.FieldText, FieldMetadata{})
		is.Equal(KindOf(err), KindNotAuthorized)
	})
}

func TestSetValue_UpsertsOneRow(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	field, err := svc.CreateField(ctx, owner, l.ID, "Points", models.FieldNumber, FieldMetadata{})
	is.NoErr(err)
	task, err := svc.CreateTask(ctx, owner, l.ID, nil, "Launch")
	is.NoErr(err)

	_, err = svc.SetValue(ctx, owner, task.ID, field.ID, "3")
	is.NoErr(err)
	_, err = svc.SetValue(ctx, owner, task.ID, field.ID, "8")
	is.NoErr(err)

	values := svc.ListValues(ctx, task.ID)
	is.Equal(len(values), 1) // second write replaced, not duplicated
	is.Equal(values[0].Value, "8")
}

func TestSetValue_CurrencyRoundTrip(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	field, err := svc.CreateField(ctx, owner, l.ID, "Budget", models.FieldCurrency, FieldMetadata{Currency: "USD"})
	is.NoErr(err)
	task, err := svc.CreateTask(ctx, owner, l.ID, nil, "Launch")
	is.NoErr(err)

	stored, err := svc.SetValue(ctx, owner, task.ID, field.ID, "1500.50")
	is.NoErr(err)
	is.Equal(stored.Value, "1500.50") // raw string survives byte for byte

	values := svc.ListValues(ctx, task.ID)
	is.Equal(len(values), 1)
	is.Equal(values[0].Value, "1500.50")
	is.Equal(models.FormatValue(field, values[0].Value), "$1,500.50")
}

func TestSetValue_RejectsForeignField(t *testing.T) {
	is := is.New(t)
	svc, _, sp, l := newTestTree(t)
	ctx := context.Background()

	other, err := svc.CreateList(ctx, owner, sp.ID, nil, "Other")
	is.NoErr(err)
	foreign, err := svc.CreateField(ctx, owner, other.ID, "Points", models.FieldNumber, FieldMetadata{})
	is.NoErr(err)
	task, err := svc.CreateTask(ctx, owner, l.ID, nil, "Launch")
	is.NoErr(err)

	_, err = svc.SetValue(ctx, owner, task.ID, foreign.ID, "3")
	is.Equal(KindOf(err), KindValidation)
	is.Equal(len(svc.ListValues(ctx, task.ID)), 0)
}

func TestDuplicateField(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	original, err := svc.CreateField(ctx, owner, l.ID, "Budget", models.FieldCurrency, FieldMetadata{Currency: "EUR", Required: true})
	is.NoErr(err)
	task, err := svc.CreateTask(ctx, owner, l.ID, nil, "Launch")
	is.NoErr(err)
	_, err = svc.SetValue(ctx, owner, task.ID, original.ID, "100")
	is.NoErr(err)

	dup, err := svc.DuplicateField(ctx, owner, original.ID)
	is.NoErr(err)
	is.Equal(dup.Name, "Budget (copy)")
	is.Equal(dup.Currency, "EUR")
	is.True(dup.Required)
	is.True(dup.ID != original.ID)

	// metadata is cloned, values are not
	n, err := svc.store.CountValuesForField(ctx, dup.ID)
	is.NoErr(err)
	is.Equal(n, 0)
}

func TestDeleteField_CascadesValues(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	field, err := svc.CreateField(ctx, owner, l.ID, "Points", models.FieldNumber, FieldMetadata{})
	is.NoErr(err)

	var tasks []models.Task
	for _, name := range []string{"a", "b", "c"} {
		task, err := svc.CreateTask(ctx, owner, l.ID, nil, name)
		is.NoErr(err)
		_, err = svc.SetValue(ctx, owner, task.ID, field.ID, "5")
		is.NoErr(err)
		tasks = append(tasks, task)
	}

	deleted, err := svc.DeleteField(ctx, owner, field.ID)
	is.NoErr(err)
	is.Equal(deleted.ID, field.ID)

	for _, task := range tasks {
		is.Equal(len(svc.ListValues(ctx, task.ID)), 0)
	}
	is.Equal(len(svc.ListFields(ctx, l.ID)), 0)
}

func TestUpdateField_TypeChangeKeepsRawValues(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	field, err := svc.CreateField(ctx, owner, l.ID, "Amount", models.FieldText, FieldMetadata{})
	is.NoErr(err)
	task, err := svc.CreateTask(ctx, owner, l.ID, nil, "Launch")
	is.NoErr(err)
	_, err = svc.SetValue(ctx, owner, task.ID, field.ID, "1500.50")
	is.NoErr(err)

	newType := models.FieldCurrency
	updated, err := svc.UpdateField(ctx, owner, field.ID, FieldPatch{Type: &newType})
	is.NoErr(err)
	is.Equal(updated.Type, models.FieldCurrency)

	// the stored value stays the raw string and reinterprets at read time
	values := svc.ListValues(ctx, task.ID)
	is.Equal(len(values), 1)
	is.Equal(values[0].Value, "1500.50")
	is.Equal(models.FormatValue(updated, values[0].Value), "R$1,500.50")
}

func TestUpdateField_PartialPatch(t *testing.T) {
	is := is.New(t)
	svc, _, _, l := newTestTree(t)
	ctx := context.Background()

	field, err := svc.CreateField(ctx, owner, l.ID, "Stage", models.FieldSelect, FieldMetadata{Options: `["a","b"]`})
	is.NoErr(err)

	pinned := true
	updated, err := svc.UpdateField(ctx, owner, field.ID, FieldPatch{Pinned: &pinned})
	is.NoErr(err)
	is.True(updated.Pinned)
	is.Equal(updated.Name, "Stage")
	is.Equal(updated.Options, `["a","b"]`)
}
