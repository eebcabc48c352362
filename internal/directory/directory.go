// Package directory manages employee records inside the stored document.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/models"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type SnapshotStore interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

type Directory struct {
	log   *slog.Logger
	store SnapshotStore
}

func New(log *slog.Logger, store SnapshotStore) *Directory {
	return &Directory{
		log:   log,
		store: store,
	}
}

func (d *Directory) Create(ctx context.Context, fields models.EmployeeFields) (models.Employee, error) {
	const op = "directory.Create"

	log := d.log.With(slog.String("op", op))

	snap, err := d.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", op, err)
	}

	emp := models.Employee{
		ID:         snap.NextEmployeeID(),
		Name:       fields.Name,
		Email:      fields.Email,
		Department: fields.Department,
		Position:   fields.Position,
		Salary:     fields.Salary,
	}

	snap.Employees = append(snap.Employees, emp)

	if err := d.store.Save(ctx, snap); err != nil {
		log.Error("failed to save employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("employee created", slog.Int64("id", emp.ID))

	return emp, nil
}

// List returns employees in insertion order.
func (d *Directory) List(ctx context.Context) ([]models.Employee, error) {
	const op = "directory.List"

	snap, err := d.store.Load(ctx)
	if err != nil {
		d.log.Error("failed to load store", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap.Employees, nil
}

// Update overwrites only the fields that are non-empty in fields; an empty
// string leaves the stored value as it was.
func (d *Directory) Update(ctx context.Context, id int64, fields models.EmployeeFields) (models.Employee, error) {
	const op = "directory.Update"

	log := d.log.With(slog.String("op", op), slog.Int64("id", id))

	snap, err := d.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", op, err)
	}

	emp := find(snap, id)
	if emp == nil {
		log.Info("employee not found")
		return models.Employee{}, fmt.Errorf("%s: %w", op, ErrEmployeeNotFound)
	}

	emp.Name = keepIfEmpty(fields.Name, emp.Name)
	emp.Email = keepIfEmpty(fields.Email, emp.Email)
	emp.Department = keepIfEmpty(fields.Department, emp.Department)
	emp.Position = keepIfEmpty(fields.Position, emp.Position)
	emp.Salary = keepIfEmpty(fields.Salary, emp.Salary)

	updated := *emp

	if err := d.store.Save(ctx, snap); err != nil {
		log.Error("failed to save employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("employee updated")

	return updated, nil
}

// Delete removes the employee. Remaining ids are not renumbered.
func (d *Directory) Delete(ctx context.Context, id int64) error {
	const op = "directory.Delete"

	log := d.log.With(slog.String("op", op), slog.Int64("id", id))

	snap, err := d.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	idx := -1
	for i := range snap.Employees {
		if snap.Employees[i].ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		log.Info("employee not found")
		return fmt.Errorf("%s: %w", op, ErrEmployeeNotFound)
	}

	snap.Employees = append(snap.Employees[:idx], snap.Employees[idx+1:]...)

	if err := d.store.Save(ctx, snap); err != nil {
		log.Error("failed to save store", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("employee deleted")

	return nil
}

func find(snap *models.Snapshot, id int64) *models.Employee {
	for i := range snap.Employees {
		if snap.Employees[i].ID == id {
			return &snap.Employees[i]
		}
	}

	return nil
}

func keepIfEmpty(next, prev string) string {
	if next == "" {
		return prev
	}

	return next
}
