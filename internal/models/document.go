package models

import (
	"fmt"
	"strings"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeText = "text/plain"

	// MaxFileSize is the per-file upload limit (10 MiB).
	MaxFileSize int64 = 10 * 1024 * 1024
)

// Slot identifies one of the two documents compared by a session.
type Slot string

const (
	SlotJobDescription Slot = "jd"
	SlotResume         Slot = "resume"
)

// Slots lists the document slots in submission order.
var Slots = []Slot{SlotJobDescription, SlotResume}

// FieldName is the multipart field the analysis service expects for the slot.
func (s Slot) FieldName() string {
	switch s {
	case SlotJobDescription:
		return "jd_file"
	case SlotResume:
		return "resume_file"
	}
	return ""
}

func (s Slot) Label() string {
	switch s {
	case SlotJobDescription:
		return "Job Description"
	case SlotResume:
		return "Resume"
	}
	return string(s)
}

// ParseSlot accepts both the short slot names and the wire field names.
func ParseSlot(value string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "jd", "jd_file", "job_description":
		return SlotJobDescription, nil
	case "resume", "resume_file", "cv":
		return SlotResume, nil
	}
	return "", fmt.Errorf("unknown document slot: %q", value)
}

// CandidateFile is a document held in memory by a session slot.
type CandidateFile struct {
	Name      string
	MediaType string
	Size      int64
	Content   []byte
	PageCount int
}

func (f *CandidateFile) Info() *FileInfo {
	if f == nil {
		return nil
	}
	return &FileInfo{
		Name:      f.Name,
		MediaType: f.MediaType,
		Size:      f.Size,
		PageCount: f.PageCount,
	}
}

type FileInfo struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
	PageCount int    `json:"page_count,omitempty"`
}
