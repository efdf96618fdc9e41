package services

import (
	"fmt"
	"mime"
	"strings"

	"github.com/h2non/filetype"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

const sniffLength = 8192

// MsgFileTooLarge is shown for any file over models.MaxFileSize.
const MsgFileTooLarge = "File size should be less than 10MB"

type FileValidator interface {
	Validate(slot models.Slot, file *models.CandidateFile) error
}

type fileValidator struct {
	maxFileSize int64
}

func NewFileValidator() FileValidator {
	return &fileValidator{maxFileSize: models.MaxFileSize}
}

// Validate implements FileValidator.
func (v *fileValidator) Validate(slot models.Slot, file *models.CandidateFile) error {
	if file == nil {
		return &ValidationError{Slot: slot, Reason: fmt.Sprintf("no %s file selected", slot.Label())}
	}

	mediaType := NormalizeMediaType(file.MediaType)
	if mediaType != models.MediaTypePDF && mediaType != models.MediaTypeText {
		return &ValidationError{Slot: slot, FileName: file.Name, Reason: "Please upload only PDF or TXT files"}
	}

	if file.Size > v.maxFileSize {
		return &ValidationError{Slot: slot, FileName: file.Name, Reason: MsgFileTooLarge}
	}

	if reason := sniffMismatch(mediaType, file.Content); reason != "" {
		return &ValidationError{Slot: slot, FileName: file.Name, Reason: reason}
	}

	return nil
}

// NormalizeMediaType strips parameters and case from a declared media type,
// so "text/plain; charset=utf-8" compares equal to "text/plain".
func NormalizeMediaType(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared)
	}
	return mediaType
}

// sniffMismatch compares the declared type against the content's magic
// bytes. Empty content is left to the declared type.
func sniffMismatch(mediaType string, content []byte) string {
	if len(content) == 0 {
		return ""
	}

	head := content
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}

	switch mediaType {
	case models.MediaTypePDF:
		if !filetype.Is(head, "pdf") {
			return "file content is not a PDF document"
		}
	case models.MediaTypeText:
		kind, _ := filetype.Match(head)
		if kind != filetype.Unknown {
			return fmt.Sprintf("file content looks like %s, not plain text", kind.MIME.Value)
		}
	}
	return ""
}
