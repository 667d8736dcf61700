package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/your-org/acs/internal/models"
	"github.com/your-org/acs/internal/observability"
	"github.com/your-org/acs/internal/storage"
)

// UnknownUserName is returned to devices when a decision references an
// identity the store cannot resolve. Only responses carry the sentinel;
// audit rows keep the reference exactly as reported.
const UnknownUserName = "Unknown User"

// Store is the persistence surface the normalizer needs.
type Store interface {
	storage.UserStore
	storage.EventStore
}

// Publisher fans appended events out to live consumers. Appending never
// waits on it and never fails because of it.
type Publisher interface {
	PublishEvent(ctx context.Context, deviceID string, data interface{}) error
}

// FaceDecision is a face scanner's verdict for one presentation.
type FaceDecision struct {
	UserID   int64
	Granted  bool
	DeviceID string
}

// CardDecision is a card reader's verdict for one swipe.
type CardDecision struct {
	CardNumber string
	Granted    bool
	DeviceID   string
}

// Receipt reports what was logged back to the submitting device.
type Receipt struct {
	EventID    int64
	UserID     *int64
	UserName   string
	CardNumber string
	Method     models.AccessMethod
	Result     models.AccessResult
	Timestamp  time.Time
	DeviceID   string
}

// Service normalizes device decisions into audit log entries and answers
// audit queries. Exactly one entry is appended per accepted decision.
type Service struct {
	store Store
	pub   Publisher
}

func NewService(store Store, pub Publisher) *Service {
	return &Service{store: store, pub: pub}
}

// SubmitFace logs a face scanner decision. The reported user id is kept on
// the audit entry even when it resolves to nobody.
func (s *Service) SubmitFace(ctx context.Context, d FaceDecision) (*Receipt, error) {
	user, err := s.store.GetUser(ctx, d.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", d.UserID, err)
	}

	deviceID := d.DeviceID
	if deviceID == "" {
		deviceID = models.DefaultFaceDevice
	}

	userID := d.UserID
	ev := &models.AccessEvent{
		UserID:    &userID,
		Method:    models.MethodFace,
		Result:    models.ResultFromGranted(d.Granted),
		Timestamp: time.Now().UTC(),
		DeviceID:  deviceID,
	}
	if err := s.store.AppendEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("append face event: %w", err)
	}

	name := UnknownUserName
	if user != nil {
		name = user.Name
		ev.UserName = &user.Name
	} else {
		observability.UnknownIdentityEvents.WithLabelValues(string(models.MethodFace)).Inc()
	}
	observability.AccessEvents.WithLabelValues(string(ev.Method), string(ev.Result)).Inc()

	s.publish(ctx, *ev)

	return &Receipt{
		EventID:   ev.ID,
		UserID:    ev.UserID,
		UserName:  name,
		Method:    ev.Method,
		Result:    ev.Result,
		Timestamp: ev.Timestamp,
		DeviceID:  ev.DeviceID,
	}, nil
}

// SubmitCard logs a card reader decision. Unknown cards are logged with no
// user id; there is nothing to attribute them to.
func (s *Service) SubmitCard(ctx context.Context, d CardDecision) (*Receipt, error) {
	user, err := s.store.GetUserByCard(ctx, d.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve card: %w", err)
	}

	deviceID := d.DeviceID
	if deviceID == "" {
		deviceID = models.DefaultCardDevice
	}

	ev := &models.AccessEvent{
		Method:    models.MethodCard,
		Result:    models.ResultFromGranted(d.Granted),
		Timestamp: time.Now().UTC(),
		DeviceID:  deviceID,
	}
	name := UnknownUserName
	if user != nil {
		ev.UserID = &user.ID
		name = user.Name
	}
	if err := s.store.AppendEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("append card event: %w", err)
	}

	if user != nil {
		ev.UserName = &user.Name
	} else {
		observability.UnknownIdentityEvents.WithLabelValues(string(models.MethodCard)).Inc()
	}
	observability.AccessEvents.WithLabelValues(string(ev.Method), string(ev.Result)).Inc()

	card := d.CardNumber
	ev.CardNumber = &card
	s.publish(ctx, *ev)

	return &Receipt{
		EventID:    ev.ID,
		UserID:     ev.UserID,
		UserName:   name,
		CardNumber: d.CardNumber,
		Method:     ev.Method,
		Result:     ev.Result,
		Timestamp:  ev.Timestamp,
		DeviceID:   ev.DeviceID,
	}, nil
}

// RecentEntries returns the newest audit entries, default limit when
// limit <= 0.
func (s *Service) RecentEntries(ctx context.Context, limit int) ([]models.AccessEvent, error) {
	entries, err := s.store.RecentEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	return entries, nil
}

// FindEntries returns audit entries inside the filter bounds, newest first.
func (s *Service) FindEntries(ctx context.Context, f storage.QueryFilter) ([]models.AccessEvent, error) {
	entries, err := s.store.QueryEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	return entries, nil
}

// publish is best-effort: the audit append is the source of truth and a
// slow or absent broker must not fail the device request.
func (s *Service) publish(ctx context.Context, ev models.AccessEvent) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishEvent(ctx, ev.DeviceID, ev); err != nil {
		slog.Warn("publish access event", "device", ev.DeviceID, "error", err)
	}
}
