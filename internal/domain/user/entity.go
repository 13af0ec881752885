package user

import "github.com/google/uuid"

// User represents a user entity in the system.
type User struct {
	ID    uuid.UUID // ID is the unique identifier for the user
	Name  string    // Name is the display name of the user
	Email string    // Email is the email address of the user
}

// IsSentinel reports whether id is the nil UUID, which never resolves to a user.
func IsSentinel(id uuid.UUID) bool {
	return id == uuid.Nil
}
