package user

import "context"

type ListFilter struct {
	Role     Role
	IsActive *bool
	Search   string // matches email or full name substrings
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f ListFilter, limit, offset int) ([]User, int64, error)
	// Active SBC-role users, ordered by sbc_code.
	ListSBC(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
}
