package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

// AnalyzerClient submits a document pair to the remote comparison service.
type AnalyzerClient interface {
	Analyze(ctx context.Context, jd, resume *models.CandidateFile) (*models.AnalysisPayload, error)
}

type analyzerClient struct {
	endpoint string
	timeout  time.Duration
}

// NewAnalyzerClient builds a client for endpoint. A zero timeout keeps the
// transport default.
func NewAnalyzerClient(endpoint string, timeout time.Duration) AnalyzerClient {
	return &analyzerClient{
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// Analyze implements AnalyzerClient. It issues exactly one request.
func (a *analyzerClient) Analyze(ctx context.Context, jd, resume *models.CandidateFile) (*models.AnalysisPayload, error) {
	if jd == nil || resume == nil {
		return nil, ErrMissingFiles
	}
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Err: err}
	}

	body, contentType, err := encodeForm(jd, resume)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	agent := fiber.Post(a.endpoint)
	agent.ContentType(contentType)
	agent.Body(body)

	if timeout, ok := a.requestTimeout(ctx); ok {
		if timeout <= 0 {
			return nil, &TransportError{Err: context.DeadlineExceeded}
		}
		agent.Timeout(timeout)
	}

	log.Printf("📤 Sending %s and %s to %s\n", jd.Name, resume.Name, a.endpoint)

	// The agent does not watch ctx, so an abandoned request finishes in the
	// background and releases itself.
	done := make(chan agentResult, 1)
	go func() {
		code, respBody, errs := agent.Bytes()
		done <- agentResult{code: code, body: respBody, errs: errs}
	}()

	var res agentResult
	select {
	case <-ctx.Done():
		log.Printf("🛑 Analysis request to %s cancelled: %v\n", a.endpoint, ctx.Err())
		return nil, &TransportError{Err: ctx.Err()}
	case res = <-done:
	}

	if len(res.errs) > 0 {
		return nil, &TransportError{Err: errors.Join(res.errs...)}
	}

	if res.code < fiber.StatusOK || res.code >= fiber.StatusMultipleChoices {
		return nil, &ServiceError{StatusCode: res.code}
	}

	payload, err := models.ParsePayload(res.body)
	if err != nil {
		return nil, &MalformedResponseError{Err: fmt.Errorf("failed to parse analysis response: %w", err)}
	}

	return payload, nil
}

type agentResult struct {
	code int
	body []byte
	errs []error
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeForm writes both files as a multipart form. Each part carries the
// file's own media type; fiber.FormFile would send application/octet-stream.
func encodeForm(jd, resume *models.CandidateFile) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, part := range []struct {
		slot models.Slot
		file *models.CandidateFile
	}{
		{models.SlotJobDescription, jd},
		{models.SlotResume, resume},
	} {
		mediaType := NormalizeMediaType(part.file.MediaType)
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(part.slot.FieldName()), quoteEscaper.Replace(part.file.Name)))
		header.Set("Content-Type", mediaType)

		w, err := mw.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create %s part: %w", part.slot.FieldName(), err)
		}
		if _, err := w.Write(part.file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write %s part: %w", part.slot.FieldName(), err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart form: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

// requestTimeout picks the tighter of the configured timeout and the context
// deadline. ok is false when neither applies.
func (a *analyzerClient) requestTimeout(ctx context.Context) (time.Duration, bool) {
	timeout := a.timeout
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return timeout, timeout > 0
	}

	remaining := time.Until(deadline)
	if timeout <= 0 || remaining < timeout {
		return remaining, true
	}
	return timeout, true
}
