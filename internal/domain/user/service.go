package user

import "context"

type UserService interface {
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
	// GetByID is open to the user themselves and to holders of users:view.
	GetByID(ctx context.Context, session Session, id string) (UserDetailResponse, error)
	// Update is open to the user themselves and to holders of users:edit.
	Update(ctx context.Context, session Session, id string, req UpdateUserRequest) (UserResponse, error)
}
