package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFParserService_PageCount(t *testing.T) {
	parser := NewPDFParserService()

	pages, err := parser.PageCount(buildPDF(t, 2))

	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestPDFParserService_BadInput(t *testing.T) {
	parser := NewPDFParserService()
	valid := buildPDF(t, 1)

	for name, content := range map[string][]byte{
		"empty":     nil,
		"garbage":   []byte("this is not a pdf at all"),
		"truncated": valid[:len(valid)/2],
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pages, err := parser.PageCount(content)
				assert.Error(t, err)
				assert.Zero(t, pages)
			})
		})
	}
}
