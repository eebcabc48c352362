package directory

import (
	"context"
	"testing"

	"staff_portal/internal/lib/logger/handlers/slogdiscard"
	"staff_portal/internal/models"
	"staff_portal/internal/storage"
	"staff_portal/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Load(context.Context) (*models.Snapshot, error) { return nil, storage.ErrIO }
func (brokenStore) Save(context.Context, *models.Snapshot) error   { return storage.ErrIO }

func newDirectory(t *testing.T) (*Directory, *memory.Store) {
	t.Helper()

	store := memory.New()

	return New(slogdiscard.NewDiscardLogger(), store), store
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	d, _ := newDirectory(t)

	a, err := d.Create(ctx, models.EmployeeFields{Name: "Ann", Email: "ann@x.com", Department: "R&D", Position: "Dev", Salary: "5000"})
	require.NoError(t, err)
	b, err := d.Create(ctx, models.EmployeeFields{Name: "Bob"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, a.ID)
	assert.EqualValues(t, 2, b.ID)
	assert.Equal(t, "5000", a.Salary)

	list, err := d.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Employee{a, b}, list)
}

func TestList_Empty(t *testing.T) {
	d, _ := newDirectory(t)

	list, err := d.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestIDsStrictlyIncreaseAcrossDeletes(t *testing.T) {
	ctx := context.Background()
	d, _ := newDirectory(t)

	var last int64
	for i := 0; i < 3; i++ {
		e, err := d.Create(ctx, models.EmployeeFields{Name: "e"})
		require.NoError(t, err)
		last = e.ID
	}

	require.NoError(t, d.Delete(ctx, 2))
	require.NoError(t, d.Delete(ctx, 3))

	for i := 0; i < 3; i++ {
		e, err := d.Create(ctx, models.EmployeeFields{Name: "n"})
		require.NoError(t, err)
		assert.Greater(t, e.ID, last)
		last = e.ID
	}

	list, err := d.List(ctx)
	require.NoError(t, err)

	ids := make([]int64, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{1, 4, 5, 6}, ids)
}

func TestUpdate_EmptyKeepsOldValue(t *testing.T) {
	ctx := context.Background()
	d, store := newDirectory(t)

	e, err := d.Create(ctx, models.EmployeeFields{Name: "Ann", Email: "ann@x.com", Department: "R&D", Position: "Dev", Salary: "5000"})
	require.NoError(t, err)

	got, err := d.Update(ctx, e.ID, models.EmployeeFields{Name: "Anna", Salary: ""})
	require.NoError(t, err)

	want := models.Employee{ID: e.ID, Name: "Anna", Email: "ann@x.com", Department: "R&D", Position: "Dev", Salary: "5000"}
	assert.Equal(t, want, got)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Employee{want}, snap.Employees)
}

func TestUpdate_AllFields(t *testing.T) {
	ctx := context.Background()
	d, _ := newDirectory(t)

	e, err := d.Create(ctx, models.EmployeeFields{Name: "Ann"})
	require.NoError(t, err)

	got, err := d.Update(ctx, e.ID, models.EmployeeFields{Name: "B", Email: "b@x.com", Department: "Ops", Position: "Lead", Salary: "1"})
	require.NoError(t, err)
	assert.Equal(t, models.Employee{ID: e.ID, Name: "B", Email: "b@x.com", Department: "Ops", Position: "Lead", Salary: "1"}, got)
}

func TestUpdate_NotFound(t *testing.T) {
	d, _ := newDirectory(t)

	_, err := d.Update(context.Background(), 42, models.EmployeeFields{Name: "x"})
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	d, _ := newDirectory(t)

	a, err := d.Create(ctx, models.EmployeeFields{Name: "a"})
	require.NoError(t, err)
	b, err := d.Create(ctx, models.EmployeeFields{Name: "b"})
	require.NoError(t, err)

	require.NoError(t, d.Delete(ctx, a.ID))
	require.ErrorIs(t, d.Delete(ctx, a.ID), ErrEmployeeNotFound)

	list, err := d.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Employee{b}, list, "ids are not renumbered")
}

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()
	d := New(slogdiscard.NewDiscardLogger(), brokenStore{})

	_, err := d.Create(ctx, models.EmployeeFields{})
	require.ErrorIs(t, err, storage.ErrIO)

	_, err = d.List(ctx)
	require.ErrorIs(t, err, storage.ErrIO)

	_, err = d.Update(ctx, 1, models.EmployeeFields{})
	require.ErrorIs(t, err, storage.ErrIO)

	require.ErrorIs(t, d.Delete(ctx, 1), storage.ErrIO)
}
