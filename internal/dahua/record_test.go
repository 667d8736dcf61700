package dahua_test

import (
	"testing"
	"time"

	"github.com/your-org/acs/internal/dahua"
	"github.com/your-org/acs/internal/models"
)

func strPtr(s string) *string { return &s }

func TestFromEntryGrantedFace(t *testing.T) {
	userID := int64(3)
	ev := models.AccessEvent{
		ID:        42,
		UserID:    &userID,
		UserName:  strPtr("Alice"),
		Timestamp: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		Method:    models.MethodFace,
		Result:    models.ResultGranted,
		DeviceID:  "faceScanner01",
	}

	r := dahua.FromEntry(ev)

	if r.RecNo != 42 {
		t.Errorf("RecNo = %d, want 42", r.RecNo)
	}
	if r.CreateTime != ev.Timestamp.Unix() {
		t.Errorf("CreateTime = %d, want %d", r.CreateTime, ev.Timestamp.Unix())
	}
	if r.Status != 1 {
		t.Errorf("Status = %d, want 1", r.Status)
	}
	if r.ErrorCode != 0 {
		t.Errorf("ErrorCode = %d, want 0", r.ErrorCode)
	}
	if r.Method != 15 {
		t.Errorf("Method = %d, want 15", r.Method)
	}
	if r.Type != "Entry" {
		t.Errorf("Type = %q, want Entry", r.Type)
	}
	if r.Door != 1 {
		t.Errorf("Door = %d, want 1", r.Door)
	}
	if r.ReaderID != "faceScanner01" {
		t.Errorf("ReaderID = %q, want faceScanner01", r.ReaderID)
	}
	if r.CurrentTemperature != 36.5 {
		t.Errorf("CurrentTemperature = %v, want 36.5", r.CurrentTemperature)
	}
	if r.CardType != 0 || r.TemperatureUnit != 0 || r.URL != "" || r.RecordURL != "" {
		t.Errorf("constant fields drifted: %+v", r)
	}
	if r.IsOverTemperature || r.CitizenIDResult {
		t.Errorf("boolean constants drifted: %+v", r)
	}
	// The legacy schema reuses the display name for both CardName and UserID.
	if r.CardName == nil || *r.CardName != "Alice" {
		t.Errorf("CardName = %v, want Alice", r.CardName)
	}
	if r.UserID == nil || *r.UserID != "Alice" {
		t.Errorf("UserID = %v, want Alice", r.UserID)
	}
}

func TestFromEntryDeniedCardErrorCodeTracksStatus(t *testing.T) {
	ev := models.AccessEvent{
		ID:         7,
		CardNumber: strPtr("CARD-9"),
		Timestamp:  time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		Method:     models.MethodCard,
		Result:     models.ResultDenied,
		DeviceID:   "cardReader01",
	}

	r := dahua.FromEntry(ev)

	if r.Status != 0 {
		t.Errorf("Status = %d, want 0", r.Status)
	}
	if r.ErrorCode != 1 {
		t.Errorf("ErrorCode = %d, want 1", r.ErrorCode)
	}
	if r.Method != 1 {
		t.Errorf("Method = %d, want 1", r.Method)
	}
	if r.CardNo == nil || *r.CardNo != "CARD-9" {
		t.Errorf("CardNo = %v, want CARD-9", r.CardNo)
	}
	if r.CardName != nil || r.UserID != nil {
		t.Errorf("unresolved identity must map to null fields, got %+v", r)
	}
}

func TestCreateTimeTruncatesSubseconds(t *testing.T) {
	ev := models.AccessEvent{
		ID:        1,
		Timestamp: time.Date(2023, 6, 1, 12, 0, 0, 999_000_000, time.UTC),
		Method:    models.MethodFace,
		Result:    models.ResultGranted,
	}

	r := dahua.FromEntry(ev)
	want := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC).Unix()
	if r.CreateTime != want {
		t.Errorf("CreateTime = %d, want %d", r.CreateTime, want)
	}
}

func TestFromEntriesPreservesOrder(t *testing.T) {
	events := []models.AccessEvent{
		{ID: 3, Method: models.MethodFace, Result: models.ResultGranted},
		{ID: 1, Method: models.MethodCard, Result: models.ResultDenied},
	}

	records := dahua.FromEntries(events)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].RecNo != 3 || records[1].RecNo != 1 {
		t.Errorf("order = [%d %d], want [3 1]", records[0].RecNo, records[1].RecNo)
	}
}
