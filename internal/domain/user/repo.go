package user

import "context"

// Repository abstracts sys_user persistence. Lookup methods return
// (nil, nil) when no row matches; write methods report the number of
// rows affected.
type Repository interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByRole(ctx context.Context, role string) ([]*User, error)
	Insert(ctx context.Context, u *User) (int64, error)
	Update(ctx context.Context, u *User) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status int) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
