package users

import "context"

// UserRepo returns apperrors.ErrNotFound for unknown users and
// apperrors.ErrAlreadyExists when inserting a duplicate SSN. Update replaces
// the password hash only when user.PasswordHash is non-empty.
type UserRepo interface {
	Get(ctx context.Context, ssn string) (*User, error)
	Insert(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, ssn string) error
	List(ctx context.Context) ([]*User, error)
}

type PhoneRepo interface {
	Get(ctx context.Context, number string) (*Phone, error)
	Insert(ctx context.Context, phone *Phone) error
	Delete(ctx context.Context, number string) error
	List(ctx context.Context) ([]*Phone, error)
	ListByUser(ctx context.Context, ssn string) ([]*Phone, error)
}
