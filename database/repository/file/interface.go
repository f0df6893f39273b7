package fileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caseflow/database"
	"caseflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.StoredFile) error
	GetByID(ctx context.Context, id string) (*models.StoredFile, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoFileRepo struct {
	coll *mongo.Collection
}

// NewMongoFileRepo returns a FileRepository on the "files" collection.
func NewMongoFileRepo(db *mongo.Database) FileRepository {
	return &mongoFileRepo{coll: db.Collection("files")}
}

func (r *mongoFileRepo) Create(ctx context.Context, file *models.StoredFile) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	file.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, file); err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

func (r *mongoFileRepo) GetByID(ctx context.Context, id string) (*models.StoredFile, error) {
	var file models.StoredFile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&file); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch file %s: %w", id, err)
	}
	return &file, nil
}

func (r *mongoFileRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
