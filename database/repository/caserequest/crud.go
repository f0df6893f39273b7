package caseRequestRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new case request, assigning an ID when absent.
func (r *mongoCaseRequestRepo) Create(ctx context.Context, req *models.CaseRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create case request: %w", err)
	}
	return nil
}

// GetByID returns a case request by its ID.
func (r *mongoCaseRequestRepo) GetByID(ctx context.Context, id string) (*models.CaseRequest, error) {
	var req models.CaseRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case request %s: %w", id, err)
	}
	return &req, nil
}

// GetAll returns every case request, newest first.
func (r *mongoCaseRequestRepo) GetAll(ctx context.Context) ([]models.CaseRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list case requests: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.CaseRequest{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode case requests: %w", err)
	}
	return records, nil
}

// Replace overwrites the stored document with req.
func (r *mongoCaseRequestRepo) Replace(ctx context.Context, req *models.CaseRequest) error {
	req.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("failed to update case request %s: %w", req.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteByID removes a case request by ID.
func (r *mongoCaseRequestRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete case request %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
