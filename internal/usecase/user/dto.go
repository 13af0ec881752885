package user

import "github.com/google/uuid"

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"contains=@"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	User User
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	ID    uuid.UUID
	Name  *string
	Email *string
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	User User
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID uuid.UUID
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID uuid.UUID
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID uuid.UUID
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User User
}

// ListUsersRequest represents the request payload for listing users.
// Nil values fall back to the domain defaults.
type ListUsersRequest struct {
	Limit  *uint32
	Offset *uint32
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}
