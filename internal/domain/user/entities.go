package user

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RolePD          Role = "PD"
	RolePM          Role = "PM"
	RoleCoordinator Role = "COORDINATOR"
	RolePFM         Role = "PFM"
	RoleSBC         Role = "SBC"
	RoleIT          Role = "IT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePD, RolePM, RoleCoordinator, RolePFM, RoleSBC, RoleIT:
		return true
	}
	return false
}

type User struct {
	ID       uint64  `gorm:"primaryKey;column:id" json:"-"`
	UserID   string  `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Email    string  `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	FullName string  `gorm:"size:255" json:"full_name"`
	Role     Role    `gorm:"type:enum('ADMIN','PD','PM','COORDINATOR','PFM','SBC','IT')" json:"role"`
	SBCCode  *string `gorm:"size:16;column:sbc_code" json:"sbc_code,omitempty"`
	IsActive bool    `gorm:"default:true" json:"is_active"`

	CanViewAllData              bool `gorm:"column:can_view_all_data" json:"can_view_all_data"`
	CanAssignPOs                bool `gorm:"column:can_assign_pos" json:"can_assign_pos"`
	CanCreateExternalPOAny      bool `gorm:"column:can_create_external_po_any" json:"can_create_external_po_any"`
	CanCreateExternalPOAssigned bool `gorm:"column:can_create_external_po_assigned" json:"can_create_external_po_assigned"`
	CanApproveLevel1            bool `gorm:"column:can_approve_level_1" json:"can_approve_level_1"`
	CanApproveLevel2            bool `gorm:"column:can_approve_level_2" json:"can_approve_level_2"`
	CanViewSBCWork              bool `gorm:"column:can_view_sbc_work" json:"can_view_sbc_work"`
	CanRespondSBCWork           bool `gorm:"column:can_respond_sbc_work" json:"can_respond_sbc_work"`
	CanManageUsers              bool `gorm:"column:can_manage_users" json:"can_manage_users"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// ApplyRoleDefaults resets the capability set to the role's defaults.
// Called on creation and whenever the role changes.
func (u *User) ApplyRoleDefaults() {
	u.CanViewAllData = false
	u.CanAssignPOs = false
	u.CanCreateExternalPOAny = false
	u.CanCreateExternalPOAssigned = false
	u.CanApproveLevel1 = false
	u.CanApproveLevel2 = false
	u.CanViewSBCWork = false
	u.CanRespondSBCWork = false
	u.CanManageUsers = false

	switch u.Role {
	case RoleAdmin:
		u.CanViewAllData = true
		u.CanAssignPOs = true
		u.CanCreateExternalPOAny = true
		u.CanApproveLevel2 = true
		u.CanViewSBCWork = true
		u.CanManageUsers = true
	case RolePD:
		u.CanViewAllData = true
		u.CanApproveLevel1 = true
		u.CanViewSBCWork = true
	case RolePM:
		u.CanCreateExternalPOAssigned = true
	case RoleCoordinator:
		u.CanViewAllData = true
		u.CanAssignPOs = true
	case RolePFM:
		u.CanViewAllData = true
		u.CanCreateExternalPOAny = true
	case RoleSBC:
		u.CanViewSBCWork = true
		u.CanRespondSBCWork = true
	case RoleIT:
		u.CanViewAllData = true
		u.CanManageUsers = true
	}
}

// CanCreateExternalPO reports whether the user holds either creation capability.
func (u *User) CanCreateExternalPO() bool {
	return u.CanCreateExternalPOAny || u.CanCreateExternalPOAssigned
}
