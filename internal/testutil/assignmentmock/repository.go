package assignmentmock

import (
	"context"

	domain "po-workflow-backend/internal/domain/assignment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields you need in a test; unfilled reads fail fast.
type Repo struct {
	CreateFn                     func(ctx context.Context, a *domain.Assignment) error
	GetByAssignmentIDFn          func(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	GetByAssignmentIDForUpdateFn func(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	ListFn                       func(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.Assignment, int64, error)
	SaveFn                       func(ctx context.Context, a *domain.Assignment) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, a *domain.Assignment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAssignmentID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	if m.GetByAssignmentIDFn != nil {
		return m.GetByAssignmentIDFn(ctx, assignmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAssignmentIDForUpdate(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	if m.GetByAssignmentIDForUpdateFn != nil {
		return m.GetByAssignmentIDForUpdateFn(ctx, assignmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.Assignment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, limit, offset)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Assignment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
