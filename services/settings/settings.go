package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"caseflow/database"
	settingsRepo "caseflow/database/repository/settings"
	"caseflow/models"
)

// AISettingsInput is the admin payload for the AI credentials row.
type AISettingsInput struct {
	APIKey         string `json:"apiKey"`
	OrganizationID string `json:"organizationId"`
}

// AISettingsView is the read model; the key itself is never returned.
type AISettingsView struct {
	Name           string `json:"name"`
	HasAPIKey      bool   `json:"hasApiKey"`
	APIKeyHint     string `json:"apiKeyHint,omitempty"`
	OrganizationID string `json:"organizationId"`
}

type SettingsService interface {
	GetAISettings(ctx context.Context) (*AISettingsView, error)
	SaveAISettings(ctx context.Context, input AISettingsInput) (*AISettingsView, error)
	AIKey(ctx context.Context) (string, error)
}

type DefaultSettingsService struct {
	Repo settingsRepo.SettingsRepository
}

func (s *DefaultSettingsService) load(ctx context.Context) (*models.SettingsAPI, error) {
	row, err := s.Repo.GetByName(ctx, models.AISettingsName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return &models.SettingsAPI{Name: models.AISettingsName}, nil
		}
		return nil, err
	}
	return row, nil
}

func (s *DefaultSettingsService) GetAISettings(ctx context.Context) (*AISettingsView, error) {
	row, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return view(row), nil
}

// SaveAISettings upserts the row by name. An empty key keeps the stored one.
func (s *DefaultSettingsService) SaveAISettings(ctx context.Context, input AISettingsInput) (*AISettingsView, error) {
	row, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if key := strings.TrimSpace(input.APIKey); key != "" {
		row.APIKey = key
	}
	row.OrganizationID = strings.TrimSpace(input.OrganizationID)
	if err := s.Repo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save AI settings: %w", err)
	}
	return view(row), nil
}

// AIKey returns the stored key, or "" when none is configured.
func (s *DefaultSettingsService) AIKey(ctx context.Context) (string, error) {
	row, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return row.APIKey, nil
}

func view(row *models.SettingsAPI) *AISettingsView {
	v := &AISettingsView{
		Name:           row.Name,
		HasAPIKey:      row.APIKey != "",
		OrganizationID: row.OrganizationID,
	}
	if len(row.APIKey) > 4 {
		v.APIKeyHint = "..." + row.APIKey[len(row.APIKey)-4:]
	}
	return v
}
