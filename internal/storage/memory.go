package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/your-org/acs/internal/models"
)

// MemoryStore is an in-process Store for tests and development
// environments. Ordering and join semantics match the Postgres store.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[int64]models.User
	partitions  []models.PhotoPartition
	events      []models.AccessEvent
	enrollments []models.EnrollmentRecord
	nextUserID  int64
	nextEventID int64
	nextEnrID   int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]models.User),
		nextUserID:  1,
		nextEventID: 1,
		nextEnrID:   1,
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() {}

// --- Users ---

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.CardNumber != nil {
		for _, existing := range s.users {
			if existing.CardNumber != nil && *existing.CardNumber == *u.CardNumber {
				return ErrDuplicateCard
			}
		}
	}

	u.ID = s.nextUserID
	s.nextUserID++
	u.RegistrationDate = time.Now().UTC()
	s.users[u.ID] = *u

	if partition := models.PartitionForRole(u.Role); partition != "" {
		s.partitions = append(s.partitions, models.PhotoPartition{
			Partition: partition,
			UserID:    u.ID,
			PhotoPath: u.PhotoPath,
		})
	}
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (s *MemoryStore) GetUserByCard(ctx context.Context, cardNumber string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.CardNumber != nil && *u.CardNumber == cardNumber {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// PhotoPartitions returns the partition registry rows written so far.
func (s *MemoryStore) PhotoPartitions() []models.PhotoPartition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PhotoPartition(nil), s.partitions...)
}

// --- Access events ---

func (s *MemoryStore) AppendEvent(ctx context.Context, ev *models.AccessEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	ev.ID = s.nextEventID
	s.nextEventID++

	stored := *ev
	stored.UserName = nil
	stored.CardNumber = nil
	if ev.UserID != nil {
		id := *ev.UserID
		stored.UserID = &id
	}
	s.events = append(s.events, stored)
	return nil
}

func (s *MemoryStore) RecentEvents(ctx context.Context, limit int) ([]models.AccessEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectEvents(nil, nil, limit), nil
}

func (s *MemoryStore) QueryEvents(ctx context.Context, f QueryFilter) ([]models.AccessEvent, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectEvents(f.From, f.To, limit), nil
}

// selectEvents filters, joins the current identity, and orders newest first
// with later inserts winning timestamp ties. Callers hold the read lock.
func (s *MemoryStore) selectEvents(from, to *time.Time, limit int) []models.AccessEvent {
	var out []models.AccessEvent
	for _, ev := range s.events {
		if from != nil && ev.Timestamp.Before(*from) {
			continue
		}
		if to != nil && ev.Timestamp.After(*to) {
			continue
		}
		joined := ev
		if ev.UserID != nil {
			id := *ev.UserID
			joined.UserID = &id
			if u, ok := s.users[id]; ok {
				name := u.Name
				joined.UserName = &name
				if u.CardNumber != nil {
					card := *u.CardNumber
					joined.CardNumber = &card
				}
			}
		}
		out = append(out, joined)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --- Enrollments ---

func (s *MemoryStore) AddEnrollments(ctx context.Context, recs []models.EnrollmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range recs {
		recs[i].ID = s.nextEnrID
		s.nextEnrID++
		s.enrollments = append(s.enrollments, recs[i])
	}
	return nil
}

func (s *MemoryStore) EnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []models.EnrollmentRecord
	for _, r := range s.enrollments {
		if r.UserID == userID {
			recs = append(recs, r)
		}
	}
	return recs, nil
}

func cloneUser(u models.User) *models.User {
	out := u
	if u.CardNumber != nil {
		card := *u.CardNumber
		out.CardNumber = &card
	}
	return &out
}
