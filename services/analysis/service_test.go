package analysis

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"caseflow/models"

	"github.com/go-pdf/fpdf"
)

type staticPatterns []models.BankPattern

func (p staticPatterns) Patterns(ctx context.Context) ([]models.BankPattern, error) {
	return p, nil
}

type fakeExtractor struct {
	pages []string
	calls int
}

func (f *fakeExtractor) ExtractPages(data []byte) ([]string, error) {
	f.calls++
	return f.pages, nil
}

type fakeFiles struct {
	saved map[string][]byte
}

func (f *fakeFiles) Save(ctx context.Context, r io.Reader, size int64, name, contentType, createdBy string) (*models.StoredFile, error) {
	data, _ := io.ReadAll(r)
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[name] = data
	return &models.StoredFile{ID: "id-" + name, Name: name}, nil
}

func (f *fakeFiles) ReadAll(ctx context.Context, id string) (*models.StoredFile, []byte, error) {
	for name, data := range f.saved {
		if "id-"+name == id {
			return &models.StoredFile{ID: id, Name: name}, data, nil
		}
	}
	return nil, nil, errors.New("file not found")
}

func TestAnalyzeUploadThenFile(t *testing.T) {
	extractor := &fakeExtractor{pages: []string{"GAM", "none"}}
	files := &fakeFiles{}
	svc := &Service{Extractor: extractor, Patterns: staticPatterns(registry), Files: files}

	report, err := svc.AnalyzeUpload(context.Background(), strings.NewReader("%PDF"), "doc.pdf", "u1")
	if err != nil {
		t.Fatalf("AnalyzeUpload: %v", err)
	}
	if report.FileID != "id-doc.pdf" || len(report.Pages) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if string(files.saved["doc.pdf"]) != "%PDF" {
		t.Fatalf("upload was not stored")
	}

	again, err := svc.AnalyzeFile(context.Background(), report.FileID)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if len(again.Pages[0].Matches) != 1 || again.Pages[0].Matches[0].BankName != "Gamma" {
		t.Fatalf("unexpected re-analysis %+v", again.Pages)
	}
	if extractor.calls != 2 {
		t.Fatalf("expected extraction to run on every analysis, ran %d times", extractor.calls)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	svc := &Service{Extractor: &fakeExtractor{}, Patterns: staticPatterns(nil), Files: &fakeFiles{}}
	if _, err := svc.AnalyzeFile(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPDFTextExtractor(t *testing.T) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Cell(0, 10, "Account ALP-1")
	doc.AddPage()
	doc.Cell(0, 10, "Nothing")
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}

	pages, err := PDFTextExtractor{}.ExtractPages(buf.Bytes())
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if !strings.Contains(pages[0], "ALP-1") {
		t.Fatalf("page 1 text %q missing code", pages[0])
	}
}

func TestPDFTextExtractorRejectsGarbage(t *testing.T) {
	if _, err := (PDFTextExtractor{}).ExtractPages([]byte("not a pdf")); !errors.Is(err, ErrUnreadablePDF) {
		t.Fatalf("expected ErrUnreadablePDF, got %v", err)
	}
}
