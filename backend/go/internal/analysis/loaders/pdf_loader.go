package loaders

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"bytes"
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

// PdfLoader implements the Loader interface for reading PDF files.
type PdfLoader struct{}

// NewPdfLoader creates a new PdfLoader.
func NewPdfLoader() *PdfLoader {
	return &PdfLoader{}
}

// Load reads a PDF file, extracts its plain text and returns it as a single
// Document.
func (l *PdfLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}

	doc := &schema.Document{
		ID:   uuid.New().String(),
		Text: buf.String(),
		Metadata: map[string]interface{}{
			"file_name": filepath.Base(path),
			"num_pages": r.NumPage(),
		},
	}

	return []*schema.Document{doc}, nil
}

// compile-time check to ensure PdfLoader implements the Loader interface
var _ interfaces.Loader = (*PdfLoader)(nil)
