package uow

import (
	"context"

	"po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/event"
	"po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/user"
)

type Repos struct {
	Users       user.Repository
	PoLines     poline.Repository
	Assignments assignment.Repository
	ExternalPOs externalpo.Repository
	Events      event.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the external PO row first, then pass it in
	WithinExternalPOTx(ctx context.Context, externalPoID string, fn func(r Repos, e *externalpo.ExternalPO) error) error
	// convenience: lock the assignment row first, then pass it in
	WithinAssignmentTx(ctx context.Context, assignmentID string, fn func(r Repos, a *assignment.Assignment) error) error
}
