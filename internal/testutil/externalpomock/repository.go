package externalpomock

import (
	"context"

	domain "po-workflow-backend/internal/domain/externalpo"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields you need in a test; unfilled reads fail fast.
type Repo struct {
	CreateFn                     func(ctx context.Context, e *domain.ExternalPO) error
	GetByExternalPOIDFn          func(ctx context.Context, externalPoID string) (*domain.ExternalPO, error)
	GetByExternalPOIDForUpdateFn func(ctx context.Context, externalPoID string) (*domain.ExternalPO, error)
	ListFn                       func(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.ExternalPO, int64, error)
	ListPendingForLevelFn        func(ctx context.Context, level domain.Level) ([]domain.ExternalPO, error)
	ListSBCWorkFn                func(ctx context.Context, sbcUserID string) ([]domain.ExternalPO, error)
	NextInternalPoSeqFn          func(ctx context.Context, year int) (int, error)
	SaveFn                       func(ctx context.Context, e *domain.ExternalPO) error
	DeleteFn                     func(ctx context.Context, e *domain.ExternalPO) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, e *domain.ExternalPO) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByExternalPOID(ctx context.Context, externalPoID string) (*domain.ExternalPO, error) {
	if m.GetByExternalPOIDFn != nil {
		return m.GetByExternalPOIDFn(ctx, externalPoID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByExternalPOIDForUpdate(ctx context.Context, externalPoID string) (*domain.ExternalPO, error) {
	if m.GetByExternalPOIDForUpdateFn != nil {
		return m.GetByExternalPOIDForUpdateFn(ctx, externalPoID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.ExternalPO, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, limit, offset)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListPendingForLevel(ctx context.Context, level domain.Level) ([]domain.ExternalPO, error) {
	if m.ListPendingForLevelFn != nil {
		return m.ListPendingForLevelFn(ctx, level)
	}
	return nil, context.Canceled
}

func (m *Repo) ListSBCWork(ctx context.Context, sbcUserID string) ([]domain.ExternalPO, error) {
	if m.ListSBCWorkFn != nil {
		return m.ListSBCWorkFn(ctx, sbcUserID)
	}
	return nil, context.Canceled
}

func (m *Repo) NextInternalPoSeq(ctx context.Context, year int) (int, error) {
	if m.NextInternalPoSeqFn != nil {
		return m.NextInternalPoSeqFn(ctx, year)
	}
	return 0, context.Canceled
}

func (m *Repo) Save(ctx context.Context, e *domain.ExternalPO) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, e *domain.ExternalPO) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, e)
	}
	return nil
}
