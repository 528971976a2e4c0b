package polinemock

import (
	"context"

	domain "po-workflow-backend/internal/domain/poline"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields you need in a test; unfilled reads fail fast.
type Repo struct {
	CreateBatchFn       func(ctx context.Context, lines []*domain.PoLine) error
	ListFn              func(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.PoLine, int64, error)
	GetByPoIDsFn        func(ctx context.Context, poIDs []string) ([]domain.PoLine, error)
	ListClaimableFn     func(ctx context.Context, assignedTo string) ([]domain.PoLine, error)
	ClaimAssignmentFn   func(ctx context.Context, poIDs []string, assignee string) error
	ReleaseAssignmentFn func(ctx context.Context, poIDs []string) error
	AttachExternalPOFn  func(ctx context.Context, poIDs []string, assignedTo, externalPoID string) error
	ReleaseExternalPOFn func(ctx context.Context, poIDs []string) error
	ReleaseAllFn        func(ctx context.Context, poIDs []string) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) CreateBatch(ctx context.Context, lines []*domain.PoLine) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, lines)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.PoLine, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, limit, offset)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) GetByPoIDs(ctx context.Context, poIDs []string) ([]domain.PoLine, error) {
	if m.GetByPoIDsFn != nil {
		return m.GetByPoIDsFn(ctx, poIDs)
	}
	return nil, context.Canceled
}

func (m *Repo) ListClaimable(ctx context.Context, assignedTo string) ([]domain.PoLine, error) {
	if m.ListClaimableFn != nil {
		return m.ListClaimableFn(ctx, assignedTo)
	}
	return nil, context.Canceled
}

func (m *Repo) ClaimAssignment(ctx context.Context, poIDs []string, assignee string) error {
	if m.ClaimAssignmentFn != nil {
		return m.ClaimAssignmentFn(ctx, poIDs, assignee)
	}
	return nil
}

func (m *Repo) ReleaseAssignment(ctx context.Context, poIDs []string) error {
	if m.ReleaseAssignmentFn != nil {
		return m.ReleaseAssignmentFn(ctx, poIDs)
	}
	return nil
}

func (m *Repo) AttachExternalPO(ctx context.Context, poIDs []string, assignedTo, externalPoID string) error {
	if m.AttachExternalPOFn != nil {
		return m.AttachExternalPOFn(ctx, poIDs, assignedTo, externalPoID)
	}
	return nil
}

func (m *Repo) ReleaseExternalPO(ctx context.Context, poIDs []string) error {
	if m.ReleaseExternalPOFn != nil {
		return m.ReleaseExternalPOFn(ctx, poIDs)
	}
	return nil
}

func (m *Repo) ReleaseAll(ctx context.Context, poIDs []string) error {
	if m.ReleaseAllFn != nil {
		return m.ReleaseAllFn(ctx, poIDs)
	}
	return nil
}
