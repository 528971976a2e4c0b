package usermock

import (
	"context"

	domain "po-workflow-backend/internal/domain/user"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields you need in a test; unfilled reads fail fast.
type Repo struct {
	CreateFn      func(ctx context.Context, u *domain.User) error
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	ListFn        func(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.User, int64, error)
	ListSBCFn     func(ctx context.Context) ([]domain.User, error)
	SaveFn        func(ctx context.Context, u *domain.User) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, limit, offset)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListSBC(ctx context.Context) ([]domain.User, error) {
	if m.ListSBCFn != nil {
		return m.ListSBCFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}
