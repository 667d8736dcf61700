// Package dahua renders audit log entries in the AccessControlCardRec
// schema spoken by legacy Dahua-style door controllers, in both the
// key=value text form and its JSON mirror.
package dahua

import (
	"github.com/your-org/acs/internal/models"
)

// Finder query contract. Requests naming a different action or table are
// rejected before any records are read.
const (
	FinderAction = "find"
	FinderTable  = "AccessControlCardRec"
)

// Wire codes for the Method field.
const (
	methodFaceRecognition = 15
	methodCardSwipe       = 1
)

const (
	recordType      = "Entry"
	doorNumber      = 1
	bodyTemperature = 36.5
)

// Record is one audit entry in wire field order. CardNo, CardName and
// UserID are nullable: the text encoder omits them, the JSON encoder
// substitutes defaults. UserID carries the display name; the legacy schema
// reuses it that way.
type Record struct {
	RecNo              int64
	CreateTime         int64
	CardNo             *string
	CardName           *string
	CardType           int
	UserID             *string
	Type               string
	Status             int
	Method             int
	Door               int
	ReaderID           string
	ErrorCode          int
	URL                string
	RecordURL          string
	IsOverTemperature  bool
	TemperatureUnit    int
	CurrentTemperature float64
	CitizenIDResult    bool
}

// FromEntry maps a canonical audit entry onto the wire record. The mapping
// is total: every entry produces a record, unknown identities included.
func FromEntry(ev models.AccessEvent) Record {
	status := 0
	if ev.Result == models.ResultGranted {
		status = 1
	}

	method := methodCardSwipe
	if ev.Method == models.MethodFace {
		method = methodFaceRecognition
	}

	// ErrorCode tracks Status: granted reads report no error.
	errorCode := 1
	if status == 1 {
		errorCode = 0
	}

	return Record{
		RecNo:              ev.ID,
		CreateTime:         ev.Timestamp.Unix(),
		CardNo:             ev.CardNumber,
		CardName:           ev.UserName,
		CardType:           0,
		UserID:             ev.UserName,
		Type:               recordType,
		Status:             status,
		Method:             method,
		Door:               doorNumber,
		ReaderID:           ev.DeviceID,
		ErrorCode:          errorCode,
		CurrentTemperature: bodyTemperature,
	}
}

// FromEntries maps a result set, preserving order.
func FromEntries(events []models.AccessEvent) []Record {
	records := make([]Record, 0, len(events))
	for _, ev := range events {
		records = append(records, FromEntry(ev))
	}
	return records
}
