package dto

// FaceAccessRequest is a face scanner's pre-computed decision. Pointer
// fields keep binding:"required" from rejecting legitimate zero values:
// accessGranted=false is a denied read, not a missing field.
type FaceAccessRequest struct {
	UserID        *int64 `json:"userId" binding:"required"`
	AccessGranted *bool  `json:"accessGranted" binding:"required"`
	DeviceID      string `json:"deviceId"`
}

type CardAccessRequest struct {
	CardNumber    string `json:"cardNumber" binding:"required"`
	AccessGranted *bool  `json:"accessGranted" binding:"required"`
	DeviceID      string `json:"deviceId"`
}

// AccessEventData echoes the logged entry back to the submitting device.
// CardNumber appears only on card events; UserID is null when a card
// matched no user, while face events keep whatever id the scanner sent.
type AccessEventData struct {
	UserID       *int64 `json:"userId"`
	UserName     string `json:"userName"`
	CardNumber   string `json:"cardNumber,omitempty"`
	AccessMethod string `json:"accessMethod"`
	Result       string `json:"result"`
	Timestamp    string `json:"timestamp"`
	DeviceID     string `json:"deviceId"`
}

type AccessEventResponse struct {
	Message string          `json:"message"`
	Data    AccessEventData `json:"data"`
}

// LogEntry is one audit log row. UserName is joined at query time and is
// null when the referenced user no longer resolves.
type LogEntry struct {
	ID           int64   `json:"id"`
	UserID       *int64  `json:"userId"`
	UserName     *string `json:"userName"`
	AccessMethod string  `json:"accessMethod"`
	Result       string  `json:"result"`
	Timestamp    string  `json:"timestamp"`
	DeviceID     string  `json:"deviceId"`
}

type LogsResponse struct {
	Logs  []LogEntry `json:"logs"`
	Count int        `json:"count"`
}

// WSAccessEvent is a WebSocket message for real-time event delivery.
type WSAccessEvent struct {
	Type     string   `json:"type"` // access_granted, access_denied
	DeviceID string   `json:"deviceId"`
	Data     LogEntry `json:"data"`
}
