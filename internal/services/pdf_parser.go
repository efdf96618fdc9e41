package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	PageCount(content []byte) (int, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// PageCount implements PDFParserService. The pdf reader panics on some
// damaged files, so a panic is reported as an error.
func (p *pdfParserService) PageCount(content []byte) (pages int, err error) {
	if len(content) == 0 {
		return 0, fmt.Errorf("empty PDF content")
	}

	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	return reader.NumPage(), nil
}
