package access_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/your-org/acs/internal/access"
	"github.com/your-org/acs/internal/models"
	"github.com/your-org/acs/internal/storage"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []models.AccessEvent
	err    error
}

func (p *capturingPublisher) PublishEvent(ctx context.Context, deviceID string, data interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := data.(models.AccessEvent); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

func (p *capturingPublisher) published() []models.AccessEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.AccessEvent(nil), p.events...)
}

func seedUser(t *testing.T, store *storage.MemoryStore, name, role, card string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Role: role, PhotoPath: "/photos/" + name + ".jpg"}
	if card != "" {
		u.CardNumber = &card
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestSubmitFaceKnownUser(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &capturingPublisher{}
	svc := access.NewService(store, pub)

	u := seedUser(t, store, "Alice", "employee", "")

	r, err := svc.SubmitFace(context.Background(), access.FaceDecision{UserID: u.ID, Granted: true})
	if err != nil {
		t.Fatalf("submit face: %v", err)
	}

	if r.UserName != "Alice" {
		t.Errorf("user name = %q, want Alice", r.UserName)
	}
	if r.Method != models.MethodFace {
		t.Errorf("method = %q, want face", r.Method)
	}
	if r.Result != models.ResultGranted {
		t.Errorf("result = %q, want granted", r.Result)
	}
	if r.DeviceID != models.DefaultFaceDevice {
		t.Errorf("device = %q, want %q", r.DeviceID, models.DefaultFaceDevice)
	}
	if r.UserID == nil || *r.UserID != u.ID {
		t.Errorf("user id = %v, want %d", r.UserID, u.ID)
	}

	events, err := store.RecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].UserName == nil || *events[0].UserName != "Alice" {
		t.Errorf("joined name = %v, want Alice", events[0].UserName)
	}

	if got := pub.published(); len(got) != 1 {
		t.Errorf("published %d events, want 1", len(got))
	}
}

func TestSubmitFaceUnknownUserStillLogged(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := access.NewService(store, nil)

	r, err := svc.SubmitFace(context.Background(), access.FaceDecision{UserID: 999, Granted: false})
	if err != nil {
		t.Fatalf("submit face: %v", err)
	}

	if r.UserName != access.UnknownUserName {
		t.Errorf("user name = %q, want %q", r.UserName, access.UnknownUserName)
	}
	if r.Result != models.ResultDenied {
		t.Errorf("result = %q, want denied", r.Result)
	}

	events, err := store.RecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	// The reported id is kept even though nobody has it.
	if events[0].UserID == nil || *events[0].UserID != 999 {
		t.Errorf("event user id = %v, want 999", events[0].UserID)
	}
	if events[0].UserName != nil {
		t.Errorf("joined name = %q, want nil", *events[0].UserName)
	}
}

func TestSubmitCardKnownCard(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := access.NewService(store, nil)

	u := seedUser(t, store, "Bob", "student", "CARD-42")

	r, err := svc.SubmitCard(context.Background(), access.CardDecision{CardNumber: "CARD-42", Granted: true, DeviceID: "lobbyReader"})
	if err != nil {
		t.Fatalf("submit card: %v", err)
	}

	if r.UserID == nil || *r.UserID != u.ID {
		t.Errorf("user id = %v, want %d", r.UserID, u.ID)
	}
	if r.UserName != "Bob" {
		t.Errorf("user name = %q, want Bob", r.UserName)
	}
	if r.CardNumber != "CARD-42" {
		t.Errorf("card = %q, want CARD-42", r.CardNumber)
	}
	if r.DeviceID != "lobbyReader" {
		t.Errorf("device = %q, want lobbyReader", r.DeviceID)
	}
}

func TestSubmitCardUnknownCardLogsNoUser(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := access.NewService(store, nil)

	r, err := svc.SubmitCard(context.Background(), access.CardDecision{CardNumber: "NOPE", Granted: false})
	if err != nil {
		t.Fatalf("submit card: %v", err)
	}

	if r.UserName != access.UnknownUserName {
		t.Errorf("user name = %q, want %q", r.UserName, access.UnknownUserName)
	}
	if r.UserID != nil {
		t.Errorf("user id = %d, want nil", *r.UserID)
	}
	if r.DeviceID != models.DefaultCardDevice {
		t.Errorf("device = %q, want %q", r.DeviceID, models.DefaultCardDevice)
	}

	events, err := store.RecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].UserID != nil {
		t.Errorf("event user id = %d, want nil", *events[0].UserID)
	}
}

func TestPublishFailureDoesNotFailSubmit(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := access.NewService(store, pub)

	if _, err := svc.SubmitFace(context.Background(), access.FaceDecision{UserID: 1, Granted: true}); err != nil {
		t.Fatalf("submit face: %v", err)
	}

	events, err := store.RecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: append must not depend on the broker", len(events))
	}
}

func TestRecentEntriesNewestFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := access.NewService(store, nil)

	u := seedUser(t, store, "Carol", "visitor", "")
	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitFace(context.Background(), access.FaceDecision{UserID: u.ID, Granted: i%2 == 0}); err != nil {
			t.Fatalf("submit face %d: %v", i, err)
		}
	}

	entries, err := svc.RecentEntries(context.Background(), 2)
	if err != nil {
		t.Fatalf("recent entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID <= entries[1].ID {
		t.Errorf("entries not newest first: ids %d, %d", entries[0].ID, entries[1].ID)
	}
}
