package storage

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/acs/internal/models"
)

// ErrDuplicateCard is returned when registering a user with a card number
// that is already assigned to someone else.
var ErrDuplicateCard = errors.New("card number already registered")

// Query limits applied when the caller passes limit <= 0.
const (
	DefaultRecentLimit = 100
	DefaultQueryLimit  = 1024
)

// QueryFilter bounds an audit-log range query. Nil bounds are open-ended;
// set bounds are inclusive. An inverted range matches nothing.
type QueryFilter struct {
	Limit int
	From  *time.Time
	To    *time.Time
}

type UserStore interface {
	// CreateUser persists u and fills its ID and RegistrationDate. The
	// role-partitioned photo registry row is written in the same
	// transaction when the role has a partition.
	CreateUser(ctx context.Context, u *models.User) error
	// GetUser returns nil, nil when no user has the id.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// GetUserByCard returns nil, nil when no user holds the card.
	GetUserByCard(ctx context.Context, cardNumber string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type EventStore interface {
	// AppendEvent persists ev and fills its ID. Ids are assigned in
	// insertion order; nothing ever updates or deletes an event.
	AppendEvent(ctx context.Context, ev *models.AccessEvent) error
	// RecentEvents returns the newest events first, ties broken by later
	// insert first, each joined with the current identity name and card.
	RecentEvents(ctx context.Context, limit int) ([]models.AccessEvent, error)
	// QueryEvents returns events inside the filter bounds, newest first,
	// joined the same way as RecentEvents.
	QueryEvents(ctx context.Context, f QueryFilter) ([]models.AccessEvent, error)
}

type EnrollmentStore interface {
	// AddEnrollments persists one batch of template records atomically.
	AddEnrollments(ctx context.Context, recs []models.EnrollmentRecord) error
	EnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentRecord, error)
}

// Store is the full persistence surface of the service.
type Store interface {
	UserStore
	EventStore
	EnrollmentStore
	Ping(ctx context.Context) error
	Close()
}
