package poline

import "context"

type ListFilter struct {
	Search        string // substring on po_number, item_description, project_name
	Status        string
	Category      string
	ProjectName   string
	IsAssigned    *bool
	HasExternalPO *bool
}

type Repository interface {
	CreateBatch(ctx context.Context, lines []*PoLine) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]PoLine, int64, error)
	GetByPoIDs(ctx context.Context, poIDs []string) ([]PoLine, error)
	// Lines an actor may pull into an external PO: assigned, not yet attached.
	// assignedTo == "" lifts the ownership restriction.
	ListClaimable(ctx context.Context, assignedTo string) ([]PoLine, error)

	// CAS flag writers. Each updates all requested lines in one statement
	// guarded by the expected prior state and returns ErrLinesUnavailable
	// unless every line was updated. Call inside a unit-of-work transaction.
	ClaimAssignment(ctx context.Context, poIDs []string, assignee string) error
	ReleaseAssignment(ctx context.Context, poIDs []string) error
	// assignedTo == "" attaches regardless of line owner.
	AttachExternalPO(ctx context.Context, poIDs []string, assignedTo, externalPoID string) error
	ReleaseExternalPO(ctx context.Context, poIDs []string) error
	// Full release back to the unassigned pool (reject policy).
	ReleaseAll(ctx context.Context, poIDs []string) error
}
