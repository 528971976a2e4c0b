package eventmock

import (
	"context"
	"sync"

	domain "po-workflow-backend/internal/domain/event"
)

// Repo is a function-backed mock that satisfies domain.Repository. Created
// events are also recorded so workflow tests can assert the audit trail.
type Repo struct {
	CreateFn             func(ctx context.Context, e *domain.ApprovalEvent) error
	ListByExternalPOIDFn func(ctx context.Context, externalPoID string) ([]domain.ApprovalEvent, error)

	mu      sync.Mutex
	created []domain.ApprovalEvent
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, e *domain.ApprovalEvent) error {
	m.mu.Lock()
	m.created = append(m.created, *e)
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListByExternalPOID(ctx context.Context, externalPoID string) ([]domain.ApprovalEvent, error) {
	if m.ListByExternalPOIDFn != nil {
		return m.ListByExternalPOIDFn(ctx, externalPoID)
	}
	return nil, context.Canceled
}

// Created returns a copy of every event recorded so far.
func (m *Repo) Created() []domain.ApprovalEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ApprovalEvent(nil), m.created...)
}
