package ai

import (
	"context"
	"errors"
	"fmt"

	"caseflow/models"
	"caseflow/utils"

	"go.uber.org/zap"
)

// ExtractionPrompt is sent with the primary document and the contract.
const ExtractionPrompt = `You are given two PDF documents: a primary case document and its contract.
Extract the following fields and answer with a single JSON object in a fenced code block labelled json, using exactly these keys:
"Business Name", "EIN", "Merchant's Name", "SSN last 4", "Additional Entities".
"Additional Entities" is a list of any other business or person names liable under the contract.
Use an empty string or an empty list when a value cannot be found.`

var ErrAIKeyMissing = errors.New("AI API key is not configured")

// KeySource resolves the API key stored in settings.
type KeySource interface {
	AIKey(ctx context.Context) (string, error)
}

// FileStore reads stored documents by ID.
type FileStore interface {
	ReadAll(ctx context.Context, id string) (*models.StoredFile, []byte, error)
}

// ExtractionService runs AI field extraction over two stored PDFs.
type ExtractionService struct {
	Generator Generator
	Keys      KeySource
	Files     FileStore
	// FallbackKey is used when no settings row holds a key.
	FallbackKey string
	// CreatePath is the create-form location the result redirects to.
	CreatePath string
}

func (s *ExtractionService) apiKey(ctx context.Context) (string, error) {
	if s.Keys != nil {
		key, err := s.Keys.AIKey(ctx)
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
	}
	if s.FallbackKey == "" {
		return "", ErrAIKeyMissing
	}
	return s.FallbackKey, nil
}

// Extract reads both files fully, asks the model once and builds the
// prefill redirect. Nothing is retried.
func (s *ExtractionService) Extract(ctx context.Context, primaryID, contractID string) (*models.ExtractionResult, error) {
	logger := utils.GetLogger()

	_, primary, err := s.Files.ReadAll(ctx, primaryID)
	if err != nil {
		return nil, fmt.Errorf("primary document: %w", err)
	}
	_, contract, err := s.Files.ReadAll(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("contract document: %w", err)
	}

	key, err := s.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	text, err := s.Generator.Generate(ctx, key, ExtractionPrompt,
		Document{MIMEType: "application/pdf", Data: primary},
		Document{MIMEType: "application/pdf", Data: contract},
	)
	if err != nil {
		logger.Error("AI extraction call failed", zap.Error(err))
		return nil, err
	}

	fields, err := ParseExtraction(text)
	if err != nil {
		logger.Warn("AI extraction response unusable", zap.Error(err))
		return nil, err
	}
	return &models.ExtractionResult{
		Fields:      fields,
		RedirectURL: BuildRedirectURL(s.CreatePath, fields),
	}, nil
}
