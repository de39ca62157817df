package domain

import "time"

// TimestampLayout renders UTC times with millisecond precision, e.g. 2024-05-01T10:20:30.123Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SendRequest is one operator submission: a phone number with country code and a text body.
type SendRequest struct {
	PhoneNumber string
	Message     string
}

// SentMessage is the data block of a successful send.
type SentMessage struct {
	MessageID   string `json:"messageId,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
