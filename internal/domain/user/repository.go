package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	ListByRole(ctx context.Context, role Role) ([]User, error)
	List(ctx context.Context) ([]User, error)
}

// UserService defines business logic for user management
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	ListUsers(ctx context.Context, role *Role) ([]UserResponse, error)

	// Me returns the authenticated caller's own profile.
	Me(ctx context.Context) (UserResponse, error)
}
