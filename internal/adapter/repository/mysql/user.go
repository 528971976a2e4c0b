package mysql

import (
	"context"

	userDomain "po-workflow-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var u userDomain.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var u userDomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, f userDomain.ListFilter, limit, offset int) ([]userDomain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []userDomain.User
	err := q.Order("full_name").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (r *UserRepository) ListSBC(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", userDomain.RoleSBC, true).
		Order("sbc_code").
		Find(&out).Error
	return out, err
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
