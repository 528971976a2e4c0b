package mysql

import (
	"context"

	"po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:       &UserRepository{db: tx},
		PoLines:     &PoLineRepository{db: tx},
		Assignments: &AssignmentRepository{db: tx},
		ExternalPOs: &ExternalPORepository{db: tx},
		Events:      &EventRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinExternalPOTx(ctx context.Context, externalPoID string, fn func(r uow.Repos, po *externalpo.ExternalPO) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the po row up-front to prevent races
		po, err := r.ExternalPOs.GetByExternalPOIDForUpdate(ctx, externalPoID)
		if err != nil {
			return err
		}
		return fn(r, po)
	})
}

func (u *GormUoW) WithinAssignmentTx(ctx context.Context, assignmentID string, fn func(r uow.Repos, a *assignment.Assignment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the assignment row up-front to prevent races
		a, err := r.Assignments.GetByAssignmentIDForUpdate(ctx, assignmentID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
