package mysql

import (
	"context"

	eventDomain "po-workflow-backend/internal/domain/event"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, ev *eventDomain.ApprovalEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *EventRepository) ListByExternalPOID(ctx context.Context, externalPoID string) ([]eventDomain.ApprovalEvent, error) {
	var out []eventDomain.ApprovalEvent
	err := r.db.WithContext(ctx).
		Where("external_po_id = ?", externalPoID).
		Order("occurred_at, id").
		Find(&out).Error
	return out, err
}
