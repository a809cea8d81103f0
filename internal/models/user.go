package models

import "github.com/google/uuid"

const (
	StudentRole    = "student"
	InstructorRole = "instructor"
	AdminRole      = "admin"
)

// User is the identity the auth layer resolves for us. The engine only
// consumes it; it never authenticates.
type User struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	Roles       []string
}
