package store

import (
	"context"
	"errors"

	"github.com/voyago-labs/voyago/internal/voyago/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Users are immutable after creation in this system, so no
// transactional surface is exposed; the unique-email constraint lives in the
// schema where it can actually win races.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and the pre-insert existence check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int64, error)
}
