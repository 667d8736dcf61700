package models

import (
	"time"
)

type AccessMethod string

const (
	MethodFace AccessMethod = "face"
	MethodCard AccessMethod = "card"
)

type AccessResult string

const (
	ResultGranted AccessResult = "granted"
	ResultDenied  AccessResult = "denied"
)

// ResultFromGranted maps a device decision flag onto the stored result token.
func ResultFromGranted(granted bool) AccessResult {
	if granted {
		return ResultGranted
	}
	return ResultDenied
}

// Default device identifiers substituted when an edge device reports a
// decision without naming itself.
const (
	DefaultFaceDevice = "faceScanner01"
	DefaultCardDevice = "cardReader01"
)

// AccessEvent is one append-only audit log entry. UserID stays nil for card
// reads that match no registered card; face events keep the reported id even
// when it resolves to nobody. UserName and CardNumber are joined from the
// identity store at query time and are never persisted on the event row.
type AccessEvent struct {
	ID         int64        `json:"id" db:"id"`
	UserID     *int64       `json:"userId" db:"user_id"`
	UserName   *string      `json:"userName" db:"user_name"`
	CardNumber *string      `json:"cardNumber,omitempty" db:"card_number"`
	Method     AccessMethod `json:"accessMethod" db:"method"`
	Result     AccessResult `json:"result" db:"result"`
	Timestamp  time.Time    `json:"timestamp" db:"timestamp"`
	DeviceID   string       `json:"deviceId" db:"device_id"`
}
