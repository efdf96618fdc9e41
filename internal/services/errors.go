package services

import (
	"errors"
	"fmt"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

var (
	ErrMissingFiles    = errors.New("Please upload both JD and Resume files")
	ErrSessionBusy     = errors.New("a submission is already in progress")
	ErrStaleSubmission = errors.New("submission was discarded by a reset")
)

// ValidationError rejects a file before anything is sent.
type ValidationError struct {
	Slot     models.Slot
	FileName string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FileName == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.FileName, e.Reason)
}

// TransportError wraps a network failure while talking to the analysis service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Failed to analyze files: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError reports a non-success HTTP status from the analysis service.
type ServiceError struct {
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("Failed to analyze files: HTTP error! status: %d", e.StatusCode)
}

// MalformedResponseError reports a response body that is not an analysis payload.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("Failed to analyze files: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// toSessionError maps an error onto the user-visible session error.
func toSessionError(err error) *models.SessionError {
	if err == nil {
		return nil
	}

	var (
		validationErr *ValidationError
		serviceErr    *ServiceError
		malformedErr  *MalformedResponseError
	)
	switch {
	case errors.As(err, &validationErr), errors.Is(err, ErrMissingFiles):
		return &models.SessionError{Kind: models.ErrorKindValidation, Message: err.Error()}
	case errors.As(err, &serviceErr):
		return &models.SessionError{
			Kind:       models.ErrorKindService,
			Message:    err.Error(),
			StatusCode: serviceErr.StatusCode,
		}
	case errors.As(err, &malformedErr):
		return &models.SessionError{Kind: models.ErrorKindMalformedResponse, Message: err.Error()}
	}
	return &models.SessionError{Kind: models.ErrorKindTransport, Message: err.Error()}
}
