package settings

import (
	"context"
	"testing"

	"caseflow/database"
	"caseflow/models"
)

type memSettingsRepo struct {
	rows map[string]models.SettingsAPI
}

func (r *memSettingsRepo) GetByName(ctx context.Context, name string) (*models.SettingsAPI, error) {
	row, ok := r.rows[name]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &row, nil
}

func (r *memSettingsRepo) Upsert(ctx context.Context, s *models.SettingsAPI) error {
	r.rows[s.Name] = *s
	return nil
}

func TestAIKeyEmptyWhenUnset(t *testing.T) {
	svc := &DefaultSettingsService{Repo: &memSettingsRepo{rows: map[string]models.SettingsAPI{}}}
	key, err := svc.AIKey(context.Background())
	if err != nil || key != "" {
		t.Fatalf("AIKey = %q, %v", key, err)
	}
}

func TestSaveAISettingsUpsertsByName(t *testing.T) {
	repo := &memSettingsRepo{rows: map[string]models.SettingsAPI{}}
	svc := &DefaultSettingsService{Repo: repo}
	ctx := context.Background()

	v, err := svc.SaveAISettings(ctx, AISettingsInput{APIKey: "sk-secret-9876", OrganizationID: "org-1"})
	if err != nil {
		t.Fatalf("SaveAISettings: %v", err)
	}
	if !v.HasAPIKey || v.APIKeyHint != "...9876" || v.Name != models.AISettingsName {
		t.Fatalf("unexpected view %+v", v)
	}

	if _, err := svc.SaveAISettings(ctx, AISettingsInput{OrganizationID: "org-2"}); err != nil {
		t.Fatalf("SaveAISettings: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected a single settings row, got %d", len(repo.rows))
	}
	key, _ := svc.AIKey(ctx)
	if key != "sk-secret-9876" || repo.rows[models.AISettingsName].OrganizationID != "org-2" {
		t.Fatalf("empty key should keep stored key; got key %q row %+v", key, repo.rows[models.AISettingsName])
	}
}
