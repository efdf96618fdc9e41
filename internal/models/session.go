package models

import (
	"encoding/json"
	"time"
)

type SessionStatus string

const (
	StatusIdle          SessionStatus = "idle"
	StatusFilesSelected SessionStatus = "files_selected"
	StatusSubmitting    SessionStatus = "submitting"
	StatusSucceeded     SessionStatus = "succeeded"
	StatusFailed        SessionStatus = "failed"
)

type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "validation"
	ErrorKindTransport         ErrorKind = "transport"
	ErrorKindService           ErrorKind = "service"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
)

type SessionError struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
}

// SessionSnapshot is a read-only copy of an upload session.
type SessionSnapshot struct {
	ID             string        `json:"id"`
	Status         SessionStatus `json:"status"`
	StatusMessage  string        `json:"status_message,omitempty"`
	JobDescription *FileInfo     `json:"jd_file,omitempty"`
	Resume         *FileInfo     `json:"resume_file,omitempty"`
	Error          *SessionError `json:"error,omitempty"`
	Result         *ViewModel    `json:"result,omitempty"`
	// Payload is the service response exactly as received.
	Payload   json.RawMessage `json:"payload,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Empty reports whether the snapshot matches a freshly created session.
func (s SessionSnapshot) Empty() bool {
	return s.Status == StatusIdle &&
		s.JobDescription == nil &&
		s.Resume == nil &&
		s.Error == nil &&
		s.Result == nil &&
		s.Payload == nil
}
