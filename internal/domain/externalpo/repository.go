package externalpo

import "context"

type ListFilter struct {
	Status            Status
	SBCResponseStatus SBCResponse
	CreatedBy         string // "" lists every creator's records
}

type Repository interface {
	Create(ctx context.Context, e *ExternalPO) error
	GetByExternalPOID(ctx context.Context, externalPoID string) (*ExternalPO, error)
	// Row-locked variant used by the workflow transactions.
	GetByExternalPOIDForUpdate(ctx context.Context, externalPoID string) (*ExternalPO, error)
	List(ctx context.Context, f ListFilter, limit, offset int) ([]ExternalPO, int64, error)
	// Approval queues: PD ordered by submitted_at desc, Admin by pd_approved_at desc.
	ListPendingForLevel(ctx context.Context, level Level) ([]ExternalPO, error)
	// Approved work assigned to one SBC, newest admin approval first.
	ListSBCWork(ctx context.Context, sbcUserID string) ([]ExternalPO, error)
	// Next per-year sequence number for internal_po_id generation.
	// Counts soft-deleted rows so numbers are never reissued.
	NextInternalPoSeq(ctx context.Context, year int) (int, error)
	Save(ctx context.Context, e *ExternalPO) error
	Delete(ctx context.Context, e *ExternalPO) error
}
