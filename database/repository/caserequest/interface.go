package caseRequestRepo

import (
	"context"
	"fmt"

	"caseflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CaseRequestRepository interface {
	Create(ctx context.Context, req *models.CaseRequest) error
	GetByID(ctx context.Context, id string) (*models.CaseRequest, error)
	GetAll(ctx context.Context) ([]models.CaseRequest, error)
	// Replace overwrites the stored document; last writer wins.
	Replace(ctx context.Context, req *models.CaseRequest) error
	DeleteByID(ctx context.Context, id string) error
}

type mongoCaseRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoCaseRequestRepo returns a CaseRequestRepository backed by the given database.
func NewMongoCaseRequestRepo(db *mongo.Database) CaseRequestRepository {
	repo := &mongoCaseRequestRepo{coll: db.Collection("case_requests")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create case request indexes: %v\n", err)
	}
	return repo
}
