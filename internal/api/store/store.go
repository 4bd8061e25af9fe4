package store

import (
	"context"
	"errors"

	"github.com/custdesk/custdesk/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Roles() Roles
	Customers() Customers

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store scope.
type Tx interface {
	Users() Users
	Roles() Roles
	Customers() Customers
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its id.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by name (login embeds role names).
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles in the system.
	ListAll(ctx context.Context) ([]domain.Role, error)
}

type Customers interface {
	// GetCustomerByID fetches one customer.
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)

	// ListCustomers returns all customers ordered by creation date.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// CreateCustomer inserts a new customer (id is ULID).
	CreateCustomer(ctx context.Context, c domain.Customer) error

	// UpdateCustomer replaces the writable fields and bumps updated_at.
	UpdateCustomer(ctx context.Context, c domain.Customer) error

	// DeleteCustomer removes a customer.
	DeleteCustomer(ctx context.Context, id string) error
}
