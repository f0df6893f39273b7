package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrUnreadablePDF = errors.New("unreadable PDF document")

// TextExtractor turns a PDF into one text string per page, in page order.
type TextExtractor interface {
	ExtractPages(data []byte) ([]string, error)
}

// PDFTextExtractor concatenates the text runs of each page.
type PDFTextExtractor struct{}

func (PDFTextExtractor) ExtractPages(data []byte) (pages []string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	n := reader.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		var sb strings.Builder
		for _, run := range page.Content().Text {
			sb.WriteString(run.S)
		}
		pages = append(pages, sb.String())
	}
	return pages, nil
}
