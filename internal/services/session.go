package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

const statusAnalyzing = "Analyzing files..."

var ErrSessionCompleted = errors.New("analysis already completed, reset the session to start over")

// UploadController drives one comparison: two file slots, one submission,
// and a terminal result or error that only a reset clears.
type UploadController interface {
	ID() uuid.UUID
	SelectFile(slot models.Slot, file *models.CandidateFile) error
	// Begin moves the session to submitting and returns the ticket to run.
	// It returns (nil, nil) when a submission is already in flight.
	Begin() (*Submission, error)
	Run(ctx context.Context, submission *Submission) error
	// Abandon fails a begun submission that could not be run.
	Abandon(submission *Submission, err error)
	Submit(ctx context.Context) error
	Reset()
	Snapshot() models.SessionSnapshot
	Status() models.SessionStatus
	LastActivity() time.Time
}

// Submission is the frozen input of one submit call.
type Submission struct {
	generation uint64
	jd         *models.CandidateFile
	resume     *models.CandidateFile
}

type SessionDeps struct {
	Validator FileValidator
	Inspector PDFParserService
	Analyzer  AnalyzerClient
}

type uploadSession struct {
	id        uuid.UUID
	validator FileValidator
	inspector PDFParserService
	analyzer  AnalyzerClient
	now       func() time.Time

	mu            sync.Mutex
	status        models.SessionStatus
	files         map[models.Slot]*models.CandidateFile
	lastErr       *models.SessionError
	payload       *models.AnalysisPayload
	view          *models.ViewModel
	statusMessage string
	generation    uint64
	updatedAt     time.Time
}

func NewUploadSession(deps SessionDeps) UploadController {
	s := &uploadSession{
		id:        uuid.New(),
		validator: deps.Validator,
		inspector: deps.Inspector,
		analyzer:  deps.Analyzer,
		now:       time.Now,
		status:    models.StatusIdle,
		files:     make(map[models.Slot]*models.CandidateFile, len(models.Slots)),
	}
	if s.validator == nil {
		s.validator = NewFileValidator()
	}
	s.updatedAt = s.now()
	return s
}

func (s *uploadSession) ID() uuid.UUID {
	return s.id
}

// SelectFile implements UploadController.
func (s *uploadSession) SelectFile(slot models.Slot, file *models.CandidateFile) error {
	if slot.FieldName() == "" {
		return fmt.Errorf("unknown document slot: %q", slot)
	}

	validationErr := s.validator.Validate(slot, file)
	if validationErr == nil {
		s.inspect(file)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch s.status {
	case models.StatusSubmitting:
		return ErrSessionBusy
	case models.StatusSucceeded:
		return ErrSessionCompleted
	}

	if validationErr != nil {
		s.lastErr = toSessionError(validationErr)
		return validationErr
	}

	s.files[slot] = file
	s.lastErr = nil
	s.status = models.StatusFilesSelected
	return nil
}

// Begin implements UploadController.
func (s *uploadSession) Begin() (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch s.status {
	case models.StatusSubmitting:
		return nil, nil
	case models.StatusSucceeded:
		return nil, ErrSessionCompleted
	}

	jd, resume := s.files[models.SlotJobDescription], s.files[models.SlotResume]
	if jd == nil || resume == nil {
		s.lastErr = toSessionError(ErrMissingFiles)
		return nil, ErrMissingFiles
	}

	s.generation++
	s.status = models.StatusSubmitting
	s.statusMessage = statusAnalyzing
	s.lastErr = nil
	s.payload = nil
	s.view = nil

	log.Printf("📤 Session %s submitting %s + %s\n", s.id, jd.Name, resume.Name)

	return &Submission{generation: s.generation, jd: jd, resume: resume}, nil
}

// Run implements UploadController. A result that arrives after a reset is
// dropped and reported as ErrStaleSubmission.
func (s *uploadSession) Run(ctx context.Context, submission *Submission) error {
	if submission == nil {
		return nil
	}

	payload, err := s.analyzer.Analyze(ctx, submission.jd, submission.resume)
	var view *models.ViewModel
	if err == nil {
		view = Normalize(payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(submission) {
		log.Printf("⚠️  Session %s dropped a result from a reset submission\n", s.id)
		return ErrStaleSubmission
	}

	s.touch()
	if err != nil {
		log.Printf("❌ Session %s analysis failed: %v\n", s.id, err)
		s.fail(err)
		return err
	}

	log.Printf("✅ Session %s analysis completed (%d%%)\n", s.id, view.DisplayPercentage)
	s.succeed(payload, view)
	return nil
}

// Abandon implements UploadController.
func (s *uploadSession) Abandon(submission *Submission, err error) {
	if submission == nil {
		return
	}
	if err == nil {
		err = errors.New("submission abandoned")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(submission) {
		return
	}
	s.touch()
	s.fail(&TransportError{Err: err})
}

// Submit implements UploadController.
func (s *uploadSession) Submit(ctx context.Context) error {
	submission, err := s.Begin()
	if err != nil || submission == nil {
		return err
	}
	return s.Run(ctx, submission)
}

// Reset implements UploadController.
func (s *uploadSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.status = models.StatusIdle
	s.files = make(map[models.Slot]*models.CandidateFile, len(models.Slots))
	s.lastErr = nil
	s.payload = nil
	s.view = nil
	s.statusMessage = ""
	s.touch()
}

// Snapshot implements UploadController.
func (s *uploadSession) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := models.SessionSnapshot{
		ID:             s.id.String(),
		Status:         s.status,
		StatusMessage:  s.statusMessage,
		JobDescription: s.files[models.SlotJobDescription].Info(),
		Resume:         s.files[models.SlotResume].Info(),
		Result:         s.view,
		UpdatedAt:      s.updatedAt,
	}
	if s.payload != nil {
		snapshot.Payload = s.payload.Raw
	}
	if s.lastErr != nil {
		errCopy := *s.lastErr
		snapshot.Error = &errCopy
	}
	return snapshot
}

func (s *uploadSession) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *uploadSession) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// current reports whether submission is the one the session is waiting on.
// Callers hold s.mu.
func (s *uploadSession) current(submission *Submission) bool {
	return s.status == models.StatusSubmitting && submission.generation == s.generation
}

func (s *uploadSession) succeed(payload *models.AnalysisPayload, view *models.ViewModel) {
	s.status = models.StatusSucceeded
	s.payload = payload
	s.view = view
	s.lastErr = nil
	s.statusMessage = ""
}

func (s *uploadSession) fail(err error) {
	s.status = models.StatusFailed
	s.payload = nil
	s.view = nil
	s.lastErr = toSessionError(err)
	s.statusMessage = ""
}

func (s *uploadSession) touch() {
	s.updatedAt = s.now()
}

// inspect records the page count of an accepted PDF. Failures only cost the
// page count.
func (s *uploadSession) inspect(file *models.CandidateFile) {
	if s.inspector == nil || NormalizeMediaType(file.MediaType) != models.MediaTypePDF {
		return
	}
	pages, err := s.inspector.PageCount(file.Content)
	if err != nil {
		log.Printf("⚠️  Could not read page count of %s: %v\n", file.Name, err)
		return
	}
	file.PageCount = pages
}
