package dahua_test

import (
	"strings"
	"testing"
	"time"

	"github.com/your-org/acs/internal/dahua"
	"github.com/your-org/acs/internal/models"
)

func TestEncodeTextFullRecord(t *testing.T) {
	userID := int64(3)
	ev := models.AccessEvent{
		ID:         7,
		UserID:     &userID,
		UserName:   strPtr("Alice"),
		CardNumber: strPtr("C1"),
		Timestamp:  time.Unix(1700000000, 0).UTC(),
		Method:     models.MethodFace,
		Result:     models.ResultGranted,
		DeviceID:   "faceScanner01",
	}

	got := dahua.EncodeText(dahua.FromEntries([]models.AccessEvent{ev}))

	want := strings.Join([]string{
		"totalCount=1",
		"found=1",
		"records[0].RecNo=7",
		"records[0].CreateTime=1700000000",
		"records[0].CardNo=C1",
		"records[0].CardName=Alice",
		"records[0].CardType=0",
		"records[0].UserID=Alice",
		"records[0].Type=Entry",
		"records[0].Status=1",
		"records[0].Method=15",
		"records[0].Door=1",
		"records[0].ReaderID=faceScanner01",
		"records[0].ErrorCode=0",
		"records[0].URL=",
		"records[0].RecordURL=",
		"records[0].IsOverTemperature=false",
		"records[0].TemperatureUnit=0",
		"records[0].CurrentTemperature=36.5",
		"records[0].CitizenIDResult=false",
	}, "\n")

	if got != want {
		t.Errorf("text encoding mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeTextOmitsNullFields(t *testing.T) {
	ev := models.AccessEvent{
		ID:        1,
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Method:    models.MethodCard,
		Result:    models.ResultDenied,
		DeviceID:  "cardReader01",
	}

	got := dahua.EncodeText(dahua.FromEntries([]models.AccessEvent{ev}))

	for _, field := range []string{".CardNo=", ".CardName=", ".UserID="} {
		if strings.Contains(got, field) {
			t.Errorf("output contains %q for a null field:\n%s", field, got)
		}
	}
	// Non-nullable empty strings still produce lines.
	if !strings.Contains(got, "records[0].URL=") {
		t.Errorf("output missing empty URL line:\n%s", got)
	}
}

func TestEncodeTextEmptyResult(t *testing.T) {
	got := dahua.EncodeText(nil)
	if got != "totalCount=0\nfound=0" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeTextNoTrailingNewline(t *testing.T) {
	ev := models.AccessEvent{ID: 1, Timestamp: time.Unix(0, 0), Method: models.MethodFace, Result: models.ResultGranted}
	got := dahua.EncodeText(dahua.FromEntries([]models.AccessEvent{ev}))
	if strings.HasSuffix(got, "\n") {
		t.Error("text encoding must not end with a newline")
	}
}

func TestDocumentSubstitutesDefaults(t *testing.T) {
	ev := models.AccessEvent{
		ID:        9,
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Method:    models.MethodCard,
		Result:    models.ResultDenied,
		DeviceID:  "cardReader01",
	}

	doc := dahua.Document(dahua.FromEntries([]models.AccessEvent{ev}))

	if doc.TotalCount != 1 || doc.Found != 1 {
		t.Errorf("counts = %d/%d, want 1/1", doc.TotalCount, doc.Found)
	}
	if len(doc.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(doc.Records))
	}
	r := doc.Records[0]
	if r.CardNo != "" {
		t.Errorf("CardNo = %q, want empty", r.CardNo)
	}
	if r.CardName != "Unknown" {
		t.Errorf("CardName = %q, want Unknown", r.CardName)
	}
	if r.UserID != "Unknown" {
		t.Errorf("UserID = %q, want Unknown", r.UserID)
	}
}

func TestDocumentKeepsResolvedIdentity(t *testing.T) {
	userID := int64(3)
	ev := models.AccessEvent{
		ID:         9,
		UserID:     &userID,
		UserName:   strPtr("Bob"),
		CardNumber: strPtr("CARD-5"),
		Timestamp:  time.Unix(1700000000, 0).UTC(),
		Method:     models.MethodCard,
		Result:     models.ResultGranted,
		DeviceID:   "cardReader01",
	}

	doc := dahua.Document(dahua.FromEntries([]models.AccessEvent{ev}))
	r := doc.Records[0]
	if r.CardNo != "CARD-5" || r.CardName != "Bob" || r.UserID != "Bob" {
		t.Errorf("identity fields = %q/%q/%q, want CARD-5/Bob/Bob", r.CardNo, r.CardName, r.UserID)
	}
	if r.Status != 1 || r.ErrorCode != 0 {
		t.Errorf("Status/ErrorCode = %d/%d, want 1/0", r.Status, r.ErrorCode)
	}
}

func TestParseTimeBound(t *testing.T) {
	got := dahua.ParseTimeBound("2023-06-01 12:30:00")
	if got == nil {
		t.Fatal("legacy format not parsed")
	}
	want := time.Date(2023, 6, 1, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = dahua.ParseTimeBound("2023-06-01T12:30:00Z")
	if got == nil || !got.Equal(want) {
		t.Errorf("rfc3339 got %v, want %v", got, want)
	}

	if dahua.ParseTimeBound("") != nil {
		t.Error("empty value must mean no bound")
	}
	if dahua.ParseTimeBound("last tuesday") != nil {
		t.Error("unparseable value must mean no bound")
	}
}
