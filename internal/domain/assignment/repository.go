package assignment

import "context"

type ListFilter struct {
	Status     Status
	AssignedTo string
}

type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByAssignmentID(ctx context.Context, assignmentID string) (*Assignment, error)
	// Row-locked variant for the respond transaction.
	GetByAssignmentIDForUpdate(ctx context.Context, assignmentID string) (*Assignment, error)
	List(ctx context.Context, f ListFilter, limit, offset int) ([]Assignment, int64, error)
	Save(ctx context.Context, a *Assignment) error
}
