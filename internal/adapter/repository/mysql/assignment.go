package mysql

import (
	"context"

	assignmentDomain "po-workflow-backend/internal/domain/assignment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *assignmentDomain.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) GetByAssignmentID(ctx context.Context, assignmentID string) (*assignmentDomain.Assignment, error) {
	var a assignmentDomain.Assignment
	if err := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByAssignmentIDForUpdate locks the row until the surrounding tx ends.
func (r *AssignmentRepository) GetByAssignmentIDForUpdate(ctx context.Context, assignmentID string) (*assignmentDomain.Assignment, error) {
	var a assignmentDomain.Assignment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assignment_id = ?", assignmentID).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) List(ctx context.Context, f assignmentDomain.ListFilter, limit, offset int) ([]assignmentDomain.Assignment, int64, error) {
	q := r.db.WithContext(ctx).Model(&assignmentDomain.Assignment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AssignedTo != "" {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []assignmentDomain.Assignment
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (r *AssignmentRepository) Save(ctx context.Context, a *assignmentDomain.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}
