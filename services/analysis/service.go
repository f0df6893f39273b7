package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"caseflow/models"
	"caseflow/utils"

	"go.uber.org/zap"
)

// PatternSource supplies the current bank code registry.
type PatternSource interface {
	Patterns(ctx context.Context) ([]models.BankPattern, error)
}

// FileStore is the subset of the file service analysis needs.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, size int64, name, contentType, createdBy string) (*models.StoredFile, error)
	ReadAll(ctx context.Context, id string) (*models.StoredFile, []byte, error)
}

// Service runs the per-page pattern scan. It keeps no state between runs.
type Service struct {
	Extractor TextExtractor
	Patterns  PatternSource
	Files     FileStore
}

func NewService(patterns PatternSource, files FileStore) *Service {
	return &Service{Extractor: PDFTextExtractor{}, Patterns: patterns, Files: files}
}

// Analyze scans data against the registry snapshot taken at call time.
func (s *Service) Analyze(ctx context.Context, data []byte) ([]models.PageResult, error) {
	pages, err := s.Extractor.ExtractPages(data)
	if err != nil {
		return nil, err
	}
	patterns, err := s.Patterns.Patterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank patterns: %w", err)
	}
	return MatchPages(pages, patterns), nil
}

// AnalyzeFile analyzes an already stored file.
func (s *Service) AnalyzeFile(ctx context.Context, fileID string) (*models.AnalysisReport, error) {
	file, data, err := s.Files.ReadAll(ctx, fileID)
	if err != nil {
		return nil, err
	}
	results, err := s.Analyze(ctx, data)
	if err != nil {
		return nil, err
	}
	return &models.AnalysisReport{FileID: file.ID, FileName: file.Name, Pages: results}, nil
}

// AnalyzeUpload stores the uploaded PDF and returns its report.
func (s *Service) AnalyzeUpload(ctx context.Context, r io.Reader, name, createdBy string) (*models.AnalysisReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	results, err := s.Analyze(ctx, data)
	if err != nil {
		return nil, err
	}
	file, err := s.Files.Save(ctx, bytes.NewReader(data), int64(len(data)), name, "application/pdf", createdBy)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Document analyzed",
		zap.String("fileId", file.ID),
		zap.Int("pages", len(results)))
	return &models.AnalysisReport{FileID: file.ID, FileName: file.Name, Pages: results}, nil
}
