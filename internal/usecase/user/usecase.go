package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/fault"
	domain "po-workflow-backend/internal/domain/user"
)

// Invalidator drops a cached user entry after a mutation. Satisfied by the
// auth middleware's redis-backed user cache.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type Usecase struct {
	repo  domain.Repository
	cache Invalidator
}

func NewUsecase(repo domain.Repository, cache Invalidator) *Usecase {
	return &Usecase{repo: repo, cache: cache}
}

// Me returns the authenticated actor's own profile.
func (u *Usecase) Me(ctx context.Context, actor *domain.User) *UserDTO {
	return toDTO(actor)
}

func (u *Usecase) List(ctx context.Context, actor *domain.User, f domain.ListFilter, page, pageSize int) ([]UserDTO, int64, error) {
	if !actor.CanManageUsers {
		return nil, 0, fault.Authorizationf("user %s may not list users", actor.UserID)
	}
	items, total, err := u.repo.List(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]UserDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return dtos, total, nil
}

// ListSBC returns the active SBC users, the picker for external PO
// creation. Any authenticated actor.
func (u *Usecase) ListSBC(ctx context.Context) ([]UserDTO, error) {
	items, err := u.repo.ListSBC(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return dtos, nil
}

// Update patches role and/or active flag. A role change re-derives the
// capability set from the role defaults.
func (u *Usecase) Update(ctx context.Context, actor *domain.User, userID string, in UpdateUserInput) (*UserDTO, error) {
	if !actor.CanManageUsers {
		return nil, fault.Authorizationf("user %s may not manage users", actor.UserID)
	}
	if in.Role != nil && !domain.Role(*in.Role).Valid() {
		return nil, fault.Validationf("unknown role %q", *in.Role)
	}

	target, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("user %s not found", userID)
		}
		return nil, err
	}

	if in.Role != nil && domain.Role(*in.Role) != target.Role {
		target.Role = domain.Role(*in.Role)
		target.ApplyRoleDefaults()
	}
	if in.IsActive != nil {
		target.IsActive = *in.IsActive
	}

	if err := u.repo.Save(ctx, target); err != nil {
		return nil, err
	}
	// stale cache only delays the change one TTL, so best effort
	_ = u.cache.Invalidate(ctx, target.UserID)
	return toDTO(target), nil
}
