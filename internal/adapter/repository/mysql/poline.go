package mysql

import (
	"context"

	polineDomain "po-workflow-backend/internal/domain/poline"

	"gorm.io/gorm"
)

type PoLineRepository struct{ db *gorm.DB }

func NewPoLineRepository(db *gorm.DB) *PoLineRepository { return &PoLineRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *PoLineRepository) Tx(ctx context.Context, fn func(repo polineDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PoLineRepository{db: tx})
	})
}

func (r *PoLineRepository) CreateBatch(ctx context.Context, lines []*polineDomain.PoLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(lines).Error
}

func (r *PoLineRepository) List(ctx context.Context, f polineDomain.ListFilter, limit, offset int) ([]polineDomain.PoLine, int64, error) {
	q := r.db.WithContext(ctx).Model(&polineDomain.PoLine{})
	q = applyPoLineFilter(q, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []polineDomain.PoLine
	err := q.Order("po_number, po_line_no").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func applyPoLineFilter(q *gorm.DB, f polineDomain.ListFilter) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("po_number LIKE ? OR item_description LIKE ? OR project_name LIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ProjectName != "" {
		q = q.Where("project_name = ?", f.ProjectName)
	}
	if f.IsAssigned != nil {
		q = q.Where("is_assigned = ?", *f.IsAssigned)
	}
	if f.HasExternalPO != nil {
		q = q.Where("has_external_po = ?", *f.HasExternalPO)
	}
	return q
}

func (r *PoLineRepository) GetByPoIDs(ctx context.Context, poIDs []string) ([]polineDomain.PoLine, error) {
	var out []polineDomain.PoLine
	err := r.db.WithContext(ctx).Where("po_id IN ?", poIDs).Find(&out).Error
	return out, err
}

func (r *PoLineRepository) ListClaimable(ctx context.Context, assignedTo string) ([]polineDomain.PoLine, error) {
	q := r.db.WithContext(ctx).
		Where("is_assigned = ? AND has_external_po = ?", true, false)
	if assignedTo != "" {
		q = q.Where("assigned_to = ?", assignedTo)
	}
	var out []polineDomain.PoLine
	err := q.Order("po_number, po_line_no").Find(&out).Error
	return out, err
}

// ClaimAssignment flips is_assigned on every line in one guarded UPDATE.
// Any line already assigned makes the whole claim fail.
func (r *PoLineRepository) ClaimAssignment(ctx context.Context, poIDs []string, assignee string) error {
	res := r.db.WithContext(ctx).Model(&polineDomain.PoLine{}).
		Where("po_id IN ? AND is_assigned = ?", poIDs, false).
		Updates(map[string]any{"is_assigned": true, "assigned_to": assignee})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(poIDs)) {
		return polineDomain.ErrLinesUnavailable
	}
	return nil
}

func (r *PoLineRepository) ReleaseAssignment(ctx context.Context, poIDs []string) error {
	return r.db.WithContext(ctx).Model(&polineDomain.PoLine{}).
		Where("po_id IN ?", poIDs).
		Updates(map[string]any{"is_assigned": false, "assigned_to": nil}).Error
}

// AttachExternalPO marks assigned lines as attached. assignedTo narrows the
// guard to lines owned by that user; empty attaches any assigned line.
func (r *PoLineRepository) AttachExternalPO(ctx context.Context, poIDs []string, assignedTo, externalPoID string) error {
	q := r.db.WithContext(ctx).Model(&polineDomain.PoLine{}).
		Where("po_id IN ? AND is_assigned = ? AND has_external_po = ?", poIDs, true, false)
	if assignedTo != "" {
		q = q.Where("assigned_to = ?", assignedTo)
	}
	res := q.Updates(map[string]any{"has_external_po": true, "external_po_id": externalPoID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(poIDs)) {
		return polineDomain.ErrLinesUnavailable
	}
	return nil
}

func (r *PoLineRepository) ReleaseExternalPO(ctx context.Context, poIDs []string) error {
	return r.db.WithContext(ctx).Model(&polineDomain.PoLine{}).
		Where("po_id IN ?", poIDs).
		Updates(map[string]any{"has_external_po": false, "external_po_id": nil}).Error
}

func (r *PoLineRepository) ReleaseAll(ctx context.Context, poIDs []string) error {
	return r.db.WithContext(ctx).Model(&polineDomain.PoLine{}).
		Where("po_id IN ?", poIDs).
		Updates(map[string]any{
			"is_assigned":     false,
			"assigned_to":     nil,
			"has_external_po": false,
			"external_po_id":  nil,
		}).Error
}
