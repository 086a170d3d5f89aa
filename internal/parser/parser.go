package parser

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"docqa/internal/models"
)

// ParseError reports content that could not be opened as a PDF.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse PDF %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractPages reads the PDF at path and returns one Page per document page,
// 1-indexed and in order. A page whose text cannot be extracted yields an
// empty string rather than failing the whole document.
//
// The pdf library panics on some malformed inputs; those are mapped to a
// ParseError like any other unreadable document.
func ExtractPages(path string) (pages []models.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &ParseError{Path: path, Err: fmt.Errorf("%v", r)}
		}
	}()
	return extractPages(path)
}

func extractPages(path string) ([]models.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	numPages := reader.NumPage()
	pages := make([]models.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		var text string
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
		}
		pages = append(pages, models.Page{Number: i, Text: text})
	}
	return pages, nil
}
