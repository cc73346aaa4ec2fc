package services

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCounter reports how many pages a document has
type PageCounter interface {
	CountPages(content []byte) (int, error)
}

// PDFPageCounter counts pages with pdfcpu
type PDFPageCounter struct{}

// NewPDFPageCounter creates a pdfcpu page counter that never touches the pdfcpu config directory
func NewPDFPageCounter() PDFPageCounter {
	api.DisableConfigDir()
	return PDFPageCounter{}
}

// CountPages parses content as a PDF and returns its page count
func (PDFPageCounter) CountPages(content []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(content), nil)
	if err != nil {
		return 0, fmt.Errorf("count pdf pages: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("count pdf pages: document reports %d pages", n)
	}
	return n, nil
}

// StaticPageCounter returns a fixed count, or Err when set
type StaticPageCounter struct {
	Pages int
	Err   error
}

func (c StaticPageCounter) CountPages([]byte) (int, error) {
	return c.Pages, c.Err
}
