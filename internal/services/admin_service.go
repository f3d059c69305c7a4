package services

import (
	"context"
	"database/sql"

	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AdminService manages portal operator accounts and credential checks.
type AdminService struct {
	db     *sql.DB
	logger *observability.Logger
}

// Ensure AdminService implements the AdminService interface
var _ serviceinterfaces.AdminService = (*AdminService)(nil)

// NewAdminServiceWithLogger creates a new AdminService instance
func NewAdminServiceWithLogger(db *sql.DB, logger *observability.Logger) *AdminService {
	return &AdminService{
		db:     db,
		logger: logger,
	}
}

const adminColumns = "id, username, password_hash, created_at"

func scanAdmin(row interface{ Scan(dest ...interface{}) error }) (*models.Admin, error) {
	var admin models.Admin
	err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Authenticate verifies a username/password pair and returns the admin on success
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (result0 *models.Admin, err error) {
	ctx, span := observability.TraceAdminFunction(ctx, "Authenticate",
		observability.AttributeAdminUsername(username),
	)
	defer observability.FinishSpan(span, &err)

	admin, err := s.GetAdminByUsername(ctx, username)
	if err != nil {
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			// Same error as a bad password so usernames cannot be probed
			return nil, contextutils.WrapError(contextutils.ErrInvalidCredentials, "authentication failed")
		}
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn(ctx, "Admin password mismatch", map[string]interface{}{
			"username": username,
		})
		return nil, contextutils.WrapError(contextutils.ErrInvalidCredentials, "authentication failed")
	}

	return admin, nil
}

// GetAdminByUsername returns an admin account or ErrRecordNotFound
func (s *AdminService) GetAdminByUsername(ctx context.Context, username string) (result0 *models.Admin, err error) {
	ctx, span := observability.TraceAdminFunction(ctx, "GetAdminByUsername",
		observability.AttributeAdminUsername(username),
	)
	defer observability.FinishSpan(span, &err)

	admin, err := scanAdmin(s.db.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admins WHERE username = $1", username))
	if err == sql.ErrNoRows {
		return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "admin %q not found", username)
	}
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get admin")
	}

	return admin, nil
}

// CreateAdmin creates an admin account with a bcrypt-hashed password
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (result0 *models.Admin, err error) {
	ctx, span := observability.TraceAdminFunction(ctx, "CreateAdmin",
		observability.AttributeAdminUsername(username),
	)
	defer observability.FinishSpan(span, &err)

	if username == "" || password == "" {
		return nil, contextutils.WrapErrorf(contextutils.ErrMissingRequired, "username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to hash password")
	}

	admin, err := scanAdmin(s.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING `+adminColumns, username, string(hash)))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create admin")
	}

	s.logger.Info(ctx, "Created admin account", map[string]interface{}{
		"username": username,
	})

	return admin, nil
}

// SetPassword replaces an admin's password
func (s *AdminService) SetPassword(ctx context.Context, username, password string) (err error) {
	ctx, span := observability.TraceAdminFunction(ctx, "SetPassword",
		observability.AttributeAdminUsername(username),
	)
	defer observability.FinishSpan(span, &err)

	if password == "" {
		return contextutils.WrapErrorf(contextutils.ErrMissingRequired, "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return contextutils.WrapError(err, "failed to hash password")
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE admins SET password_hash = $2 WHERE username = $1", username, string(hash))
	if err != nil {
		return contextutils.WrapError(err, "failed to set admin password")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return contextutils.WrapError(err, "failed to read rows affected")
	}
	if affected == 0 {
		return contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "admin %q not found", username)
	}

	return nil
}

// EnsureAdminExists creates the bootstrap admin account if it is missing
func (s *AdminService) EnsureAdminExists(ctx context.Context, username, password string) (err error) {
	ctx, span := observability.TraceAdminFunction(ctx, "EnsureAdminExists",
		observability.AttributeAdminUsername(username),
	)
	defer observability.FinishSpan(span, &err)

	_, err = s.GetAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !contextutils.IsError(err, contextutils.ErrRecordNotFound) {
		return err
	}

	if _, err = s.CreateAdmin(ctx, username, password); err != nil {
		return contextutils.WrapError(err, "failed to create bootstrap admin")
	}

	s.logger.Info(ctx, "Bootstrap admin account created", map[string]interface{}{
		"username": username,
	})

	return nil
}
