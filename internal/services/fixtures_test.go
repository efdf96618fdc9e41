package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

// buildPDF writes a minimal well-formed PDF with the given number of blank
// pages, computing the xref offsets as it goes.
func buildPDF(t *testing.T, pages int) []byte {
	t.Helper()
	require.Positive(t, pages)

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := ""
	for i := 0; i < pages; i++ {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pages))
	for i := 0; i < pages; i++ {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func textFile(name, content string) *models.CandidateFile {
	return &models.CandidateFile{
		Name:      name,
		MediaType: models.MediaTypeText,
		Size:      int64(len(content)),
		Content:   []byte(content),
	}
}

func pdfFile(t *testing.T, name string, pages int) *models.CandidateFile {
	content := buildPDF(t, pages)
	return &models.CandidateFile{
		Name:      name,
		MediaType: models.MediaTypePDF,
		Size:      int64(len(content)),
		Content:   content,
	}
}

// fakeAnalyzer records calls and, when release is set, blocks each call
// until release is closed.
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	payload *models.AnalysisPayload
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, jd, resume *models.CandidateFile) (*models.AnalysisPayload, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.payload, f.err
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func mustPayload(t *testing.T, body string) *models.AnalysisPayload {
	t.Helper()
	payload, err := models.ParsePayload([]byte(body))
	require.NoError(t, err)
	return payload
}
