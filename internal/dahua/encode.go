package dahua

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeText renders records as the key=value line protocol: a totalCount
// and found header, then one line per field in wire order. Nullable fields
// with no value produce no line at all. No trailing newline.
func EncodeText(records []Record) string {
	lines := make([]string, 0, 2+len(records)*18)
	lines = append(lines,
		fmt.Sprintf("totalCount=%d", len(records)),
		fmt.Sprintf("found=%d", len(records)))
	for i, r := range records {
		lines = appendRecordLines(lines, i, r)
	}
	return strings.Join(lines, "\n")
}

func appendRecordLines(lines []string, idx int, r Record) []string {
	add := func(field, value string) {
		lines = append(lines, fmt.Sprintf("records[%d].%s=%s", idx, field, value))
	}

	add("RecNo", strconv.FormatInt(r.RecNo, 10))
	add("CreateTime", strconv.FormatInt(r.CreateTime, 10))
	if r.CardNo != nil {
		add("CardNo", *r.CardNo)
	}
	if r.CardName != nil {
		add("CardName", *r.CardName)
	}
	add("CardType", strconv.Itoa(r.CardType))
	if r.UserID != nil {
		add("UserID", *r.UserID)
	}
	add("Type", r.Type)
	add("Status", strconv.Itoa(r.Status))
	add("Method", strconv.Itoa(r.Method))
	add("Door", strconv.Itoa(r.Door))
	add("ReaderID", r.ReaderID)
	add("ErrorCode", strconv.Itoa(r.ErrorCode))
	add("URL", r.URL)
	add("RecordURL", r.RecordURL)
	add("IsOverTemperature", strconv.FormatBool(r.IsOverTemperature))
	add("TemperatureUnit", strconv.Itoa(r.TemperatureUnit))
	add("CurrentTemperature", strconv.FormatFloat(r.CurrentTemperature, 'f', -1, 64))
	add("CitizenIDResult", strconv.FormatBool(r.CitizenIDResult))

	return lines
}

// RecordDocument is the JSON mirror of one wire record. Null suppression
// does not apply here; absent values get wire defaults instead.
type RecordDocument struct {
	RecNo              int64   `json:"RecNo"`
	CreateTime         int64   `json:"CreateTime"`
	CardNo             string  `json:"CardNo"`
	CardName           string  `json:"CardName"`
	CardType           int     `json:"CardType"`
	UserID             string  `json:"UserID"`
	Type               string  `json:"Type"`
	Status             int     `json:"Status"`
	Method             int     `json:"Method"`
	Door               int     `json:"Door"`
	ReaderID           string  `json:"ReaderID"`
	ErrorCode          int     `json:"ErrorCode"`
	URL                string  `json:"URL"`
	RecordURL          string  `json:"RecordURL"`
	IsOverTemperature  bool    `json:"IsOverTemperature"`
	TemperatureUnit    int     `json:"TemperatureUnit"`
	CurrentTemperature float64 `json:"CurrentTemperature"`
	CitizenIDResult    bool    `json:"CitizenIDResult"`
}

// RecordsDocument is the JSON response body of the record finder.
type RecordsDocument struct {
	TotalCount int              `json:"totalCount"`
	Found      int              `json:"found"`
	Records    []RecordDocument `json:"records"`
}

// Document renders records as the JSON document form.
func Document(records []Record) RecordsDocument {
	docs := make([]RecordDocument, 0, len(records))
	for _, r := range records {
		docs = append(docs, documentRecord(r))
	}
	return RecordsDocument{TotalCount: len(records), Found: len(records), Records: docs}
}

func documentRecord(r Record) RecordDocument {
	cardNo := ""
	if r.CardNo != nil {
		cardNo = *r.CardNo
	}
	cardName := "Unknown"
	if r.CardName != nil {
		cardName = *r.CardName
	}
	userID := "Unknown"
	if r.UserID != nil {
		userID = *r.UserID
	}

	return RecordDocument{
		RecNo:              r.RecNo,
		CreateTime:         r.CreateTime,
		CardNo:             cardNo,
		CardName:           cardName,
		CardType:           r.CardType,
		UserID:             userID,
		Type:               r.Type,
		Status:             r.Status,
		Method:             r.Method,
		Door:               r.Door,
		ReaderID:           r.ReaderID,
		ErrorCode:          r.ErrorCode,
		URL:                r.URL,
		RecordURL:          r.RecordURL,
		IsOverTemperature:  r.IsOverTemperature,
		TemperatureUnit:    r.TemperatureUnit,
		CurrentTemperature: r.CurrentTemperature,
		CitizenIDResult:    r.CitizenIDResult,
	}
}

// ParseTimeBound parses a query time bound. Legacy controllers send
// "2006-01-02 15:04:05"; newer firmware sends RFC 3339. Anything else is
// treated as no bound.
func ParseTimeBound(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
