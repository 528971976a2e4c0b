package poline

import (
	"context"

	"po-workflow-backend/internal/domain/fault"
	domain "po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/user"
)

// Usecase is read-only: the pool's flags are written by the assignment
// and external-po workflows, never here.
type Usecase struct {
	repo domain.Repository
}

func NewUsecase(repo domain.Repository) *Usecase {
	return &Usecase{repo: repo}
}

func (u *Usecase) List(ctx context.Context, f domain.ListFilter, page, pageSize int) ([]PoLineDTO, int64, error) {
	items, total, err := u.repo.List(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]PoLineDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return dtos, total, nil
}

// ListAvailable returns the lines the actor could pull into a new external
// PO: assigned but not yet attached, scoped to their own lines unless they
// may create from any.
func (u *Usecase) ListAvailable(ctx context.Context, actor *user.User) ([]PoLineDTO, error) {
	if !actor.CanCreateExternalPO() {
		return nil, fault.Authorizationf("user %s may not create external pos", actor.UserID)
	}
	owner := actor.UserID
	if actor.CanCreateExternalPOAny {
		owner = ""
	}
	items, err := u.repo.ListClaimable(ctx, owner)
	if err != nil {
		return nil, err
	}
	dtos := make([]PoLineDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return dtos, nil
}
