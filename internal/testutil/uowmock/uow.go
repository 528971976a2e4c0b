package uowmock

import (
	"context"
	"errors"

	"po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn           func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinExternalPOTxFn func(ctx context.Context, externalPoID string, fn func(r uow.Repos, e *externalpo.ExternalPO) error) error
	WithinAssignmentTxFn func(ctx context.Context, assignmentID string, fn func(r uow.Repos, a *assignment.Assignment) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinExternalPOTx(fn func(context.Context, string, func(uow.Repos, *externalpo.ExternalPO) error) error) *UoW {
	m.WithinExternalPOTxFn = fn
	return m
}
func (m *UoW) WithWithinAssignmentTx(fn func(context.Context, string, func(uow.Repos, *assignment.Assignment) error) error) *UoW {
	m.WithinAssignmentTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinExternalPOTx(ctx context.Context, externalPoID string, fn func(r uow.Repos, e *externalpo.ExternalPO) error) error {
	if m.WithinExternalPOTxFn != nil {
		return m.WithinExternalPOTxFn(ctx, externalPoID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinAssignmentTx(ctx context.Context, assignmentID string, fn func(r uow.Repos, a *assignment.Assignment) error) error {
	if m.WithinAssignmentTxFn != nil {
		return m.WithinAssignmentTxFn(ctx, assignmentID, fn)
	}
	return errUnimplemented
}
