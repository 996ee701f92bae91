package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	// Update writes name, email, role, role_id and contact details.
	Update(ctx context.Context, u User) error
	// CustomCapabilities returns the grants of the user's custom role, if any.
	CustomCapabilities(ctx context.Context, userID string) ([]Capability, error)
}
