package user

import (
	"time"

	domain "po-workflow-backend/internal/domain/user"
)

type UpdateUserInput struct {
	Role     *string
	IsActive *bool
}

type CapabilitiesDTO struct {
	CanViewAllData              bool `json:"can_view_all_data"`
	CanAssignPOs                bool `json:"can_assign_pos"`
	CanCreateExternalPOAny      bool `json:"can_create_external_po_any"`
	CanCreateExternalPOAssigned bool `json:"can_create_external_po_assigned"`
	CanApproveLevel1            bool `json:"can_approve_level_1"`
	CanApproveLevel2            bool `json:"can_approve_level_2"`
	CanViewSBCWork              bool `json:"can_view_sbc_work"`
	CanRespondSBCWork           bool `json:"can_respond_sbc_work"`
	CanManageUsers              bool `json:"can_manage_users"`
}

type UserDTO struct {
	UserID       string          `json:"user_id"`
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	Role         string          `json:"role"`
	SBCCode      *string         `json:"sbc_code,omitempty"`
	IsActive     bool            `json:"is_active"`
	Capabilities CapabilitiesDTO `json:"capabilities"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		UserID:   u.UserID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		SBCCode:  u.SBCCode,
		IsActive: u.IsActive,
		Capabilities: CapabilitiesDTO{
			CanViewAllData:              u.CanViewAllData,
			CanAssignPOs:                u.CanAssignPOs,
			CanCreateExternalPOAny:      u.CanCreateExternalPOAny,
			CanCreateExternalPOAssigned: u.CanCreateExternalPOAssigned,
			CanApproveLevel1:            u.CanApproveLevel1,
			CanApproveLevel2:            u.CanApproveLevel2,
			CanViewSBCWork:              u.CanViewSBCWork,
			CanRespondSBCWork:           u.CanRespondSBCWork,
			CanManageUsers:              u.CanManageUsers,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
