package mysql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	externalpoDomain "po-workflow-backend/internal/domain/externalpo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExternalPORepository struct{ db *gorm.DB }

func NewExternalPORepository(db *gorm.DB) *ExternalPORepository {
	return &ExternalPORepository{db: db}
}

func (r *ExternalPORepository) Create(ctx context.Context, po *externalpoDomain.ExternalPO) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *ExternalPORepository) GetByExternalPOID(ctx context.Context, externalPoID string) (*externalpoDomain.ExternalPO, error) {
	var po externalpoDomain.ExternalPO
	if err := r.db.WithContext(ctx).Where("external_po_id = ?", externalPoID).First(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByExternalPOIDForUpdate locks the row until the surrounding tx ends.
func (r *ExternalPORepository) GetByExternalPOIDForUpdate(ctx context.Context, externalPoID string) (*externalpoDomain.ExternalPO, error) {
	var po externalpoDomain.ExternalPO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_po_id = ?", externalPoID).
		First(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *ExternalPORepository) List(ctx context.Context, f externalpoDomain.ListFilter, limit, offset int) ([]externalpoDomain.ExternalPO, int64, error) {
	q := r.db.WithContext(ctx).Model(&externalpoDomain.ExternalPO{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SBCResponseStatus != "" {
		q = q.Where("sbc_response_status = ?", f.SBCResponseStatus)
	}
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []externalpoDomain.ExternalPO
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

// ListPendingForLevel returns the approval inbox for one level, newest
// arrival into that stage first.
func (r *ExternalPORepository) ListPendingForLevel(ctx context.Context, level externalpoDomain.Level) ([]externalpoDomain.ExternalPO, error) {
	order := "submitted_at DESC"
	if level == externalpoDomain.LevelAdmin {
		order = "pd_approved_at DESC"
	}
	var out []externalpoDomain.ExternalPO
	err := r.db.WithContext(ctx).
		Where("status = ?", externalpoDomain.PendingStatusFor(level)).
		Order(order).
		Find(&out).Error
	return out, err
}

// ListSBCWork returns approved POs routed to one subcontractor that still
// await a response.
func (r *ExternalPORepository) ListSBCWork(ctx context.Context, sbcUserID string) ([]externalpoDomain.ExternalPO, error) {
	var out []externalpoDomain.ExternalPO
	err := r.db.WithContext(ctx).
		Where("status = ? AND assigned_to_sbc = ? AND sbc_response_status = ?",
			externalpoDomain.StatusApproved, sbcUserID, externalpoDomain.SBCPending).
		Order("admin_approved_at DESC").
		Find(&out).Error
	return out, err
}

// NextInternalPoSeq returns the next per-year sequence number. The read locks
// the current max row; the unique index on internal_po_id backstops races.
// Ordering by length first keeps numeric order once the counter outgrows its
// zero padding.
func (r *ExternalPORepository) NextInternalPoSeq(ctx context.Context, year int) (int, error) {
	prefix := fmt.Sprintf("EPO-%d-", year)
	var last externalpoDomain.ExternalPO
	err := r.db.WithContext(ctx).Unscoped().
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("internal_po_id LIKE ?", prefix+"%").
		Order("LENGTH(internal_po_id) DESC, internal_po_id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, err
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(last.InternalPoID, prefix))
	if err != nil {
		return 0, fmt.Errorf("parse internal po id %q: %w", last.InternalPoID, err)
	}
	return seq + 1, nil
}

func (r *ExternalPORepository) Save(ctx context.Context, po *externalpoDomain.ExternalPO) error {
	return r.db.WithContext(ctx).Save(po).Error
}

func (r *ExternalPORepository) Delete(ctx context.Context, po *externalpoDomain.ExternalPO) error {
	return r.db.WithContext(ctx).Delete(po).Error
}
