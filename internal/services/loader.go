package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

// CandidateLoader reads a selected document into memory. Files over the size
// limit are returned with their size only, so validation can reject them
// without buffering the content.
type CandidateLoader interface {
	FromMultipart(file *multipart.FileHeader) (*models.CandidateFile, error)
	FromPath(path string) (*models.CandidateFile, error)
}

type candidateLoader struct {
	maxFileSize int64
}

func NewCandidateLoader() CandidateLoader {
	return &candidateLoader{maxFileSize: models.MaxFileSize}
}

// FromMultipart implements CandidateLoader.
func (l *candidateLoader) FromMultipart(file *multipart.FileHeader) (*models.CandidateFile, error) {
	if file == nil {
		return nil, fmt.Errorf("no file in upload")
	}

	candidate := &models.CandidateFile{
		Name:      filepath.Base(file.Filename),
		MediaType: file.Header.Get("Content-Type"),
		Size:      file.Size,
	}

	if file.Size <= l.maxFileSize {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		content, err := io.ReadAll(io.LimitReader(src, l.maxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		candidate.Content = content
		candidate.Size = int64(len(content))
	}

	if declared := NormalizeMediaType(candidate.MediaType); declared == "" || declared == "application/octet-stream" {
		candidate.MediaType = detectMediaType(candidate.Name, candidate.Content)
	}

	return candidate, nil
}

// FromPath implements CandidateLoader.
func (l *candidateLoader) FromPath(path string) (*models.CandidateFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	candidate := &models.CandidateFile{
		Name: filepath.Base(path),
		Size: info.Size(),
	}

	if info.Size() <= l.maxFileSize {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		candidate.Content = content
		candidate.Size = int64(len(content))
	}

	candidate.MediaType = detectMediaType(candidate.Name, candidate.Content)
	return candidate, nil
}

// detectMediaType declares a type the way a browser file picker does: by
// extension first, then by magic bytes.
func detectMediaType(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return models.MediaTypePDF
	case ".txt":
		return models.MediaTypeText
	}

	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return NormalizeMediaType(byExt)
		}
	}

	if len(content) > 0 {
		head := content
		if len(head) > sniffLength {
			head = head[:sniffLength]
		}
		if kind, _ := filetype.Match(head); kind != filetype.Unknown {
			return kind.MIME.Value
		}
	}

	return "application/octet-stream"
}
