package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caseflow/database"
	"caseflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	GetByName(ctx context.Context, name string) (*models.SettingsAPI, error)
	Upsert(ctx context.Context, s *models.SettingsAPI) error
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepo{coll: db.Collection("settings_api")}
}

func (r *mongoSettingsRepo) GetByName(ctx context.Context, name string) (*models.SettingsAPI, error) {
	var s models.SettingsAPI
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch settings %q: %w", name, err)
	}
	return &s, nil
}

// Upsert writes the row keyed by name, creating it on first save.
func (r *mongoSettingsRepo) Upsert(ctx context.Context, s *models.SettingsAPI) error {
	s.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"name": s.Name}, s, opts); err != nil {
		return fmt.Errorf("failed to save settings %q: %w", s.Name, err)
	}
	return nil
}
