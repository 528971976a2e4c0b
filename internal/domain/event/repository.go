package event

import "context"

type Repository interface {
	Create(ctx context.Context, e *ApprovalEvent) error
	// Oldest first, so the list reads as a timeline.
	ListByExternalPOID(ctx context.Context, externalPoID string) ([]ApprovalEvent, error)
}
