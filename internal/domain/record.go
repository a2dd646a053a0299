package domain

import "time"

// Direction distinguishes traffic this service received from traffic it
// originated toward an upstream.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Record is one captured HTTP exchange. Records are immutable once appended
// to a store; a zero Status means no response was ever produced.
type Record struct {
	ID              string            `json:"id"`
	Timestamp       time.Time         `json:"timestamp"`
	Direction       Direction         `json:"direction"`
	Method          string            `json:"method"`
	URL             string            `json:"url"`
	Status          int               `json:"status,omitempty"`
	DurationMs      int64             `json:"durationMs,omitempty"`
	RequestHeaders  map[string]string `json:"requestHeaders,omitempty"`
	ResponseHeaders map[string]string `json:"responseHeaders,omitempty"`
	RequestBody     any               `json:"requestBody,omitempty"`
	ResponseBody    any               `json:"responseBody,omitempty"`
	Error           string            `json:"error,omitempty"`
	Tag             string            `json:"tag,omitempty"`
}

// HasStatus reports whether a response status was captured for this record.
func (r Record) HasStatus() bool {
	return r.Status != 0
}
