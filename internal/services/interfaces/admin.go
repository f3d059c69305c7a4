package serviceinterfaces

import (
	"context"

	"kingsadvice/internal/models"
)

// AdminService defines the interface for portal operator accounts.
type AdminService interface {
	// Authenticate verifies a username/password pair and returns the admin on success
	Authenticate(ctx context.Context, username, password string) (*models.Admin, error)

	// GetAdminByUsername returns an admin account or ErrRecordNotFound
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)

	// CreateAdmin creates an admin account with a bcrypt-hashed password
	CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error)

	// SetPassword replaces an admin's password
	SetPassword(ctx context.Context, username, password string) error

	// EnsureAdminExists creates the bootstrap admin account if it is missing
	EnsureAdminExists(ctx context.Context, username, password string) error
}
