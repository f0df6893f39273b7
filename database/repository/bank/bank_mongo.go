package bankRepo

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

// MongoBankRepo implements BankRepository using MongoDB.
type MongoBankRepo struct {
	coll *mongo.Collection
}

// NewMongoBankRepo creates a BankRepository on the "bank_agency_codes" collection.
func NewMongoBankRepo(db *mongo.Database) BankRepository {
	repo := &MongoBankRepo{coll: db.Collection("bank_agency_codes")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create bank indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBankRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bankName", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBankRepo) Create(ctx context.Context, bank *models.BankAgencyCode) error {
	if bank.ID == "" {
		bank.ID = uuid.New().String()
	}
	now := time.Now()
	bank.CreatedAt = now
	bank.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, bank); err != nil {
		return fmt.Errorf("failed to create bank: %w", err)
	}
	return nil
}

func (r *MongoBankRepo) GetByID(ctx context.Context, id string) (*models.BankAgencyCode, error) {
	var bank models.BankAgencyCode
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bank); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch bank %s: %w", id, err)
	}
	return &bank, nil
}

func (r *MongoBankRepo) GetAll(ctx context.Context) ([]models.BankAgencyCode, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bankName", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer cursor.Close(ctx)

	banks := []models.BankAgencyCode{}
	if err := cursor.All(ctx, &banks); err != nil {
		return nil, fmt.Errorf("failed to decode banks: %w", err)
	}
	return banks, nil
}

func (r *MongoBankRepo) Replace(ctx context.Context, bank *models.BankAgencyCode) error {
	bank.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": bank.ID}, bank)
	if err != nil {
		return fmt.Errorf("failed to update bank %s: %w", bank.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoBankRepo) UpsertByName(ctx context.Context, bank *models.BankAgencyCode) error {
	now := time.Now()
	if bank.ID == "" {
		bank.ID = uuid.New().String()
	}
	update := bson.M{
		"$set": bson.M{
			"phoneNumber": bank.PhoneNumber,
			"address":     bank.Address,
			"fax":         bank.Fax,
			"codes":       bank.Codes,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"id":        bank.ID,
			"bankName":  bank.BankName,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"bankName": bank.BankName}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert bank %s: %w", bank.BankName, err)
	}
	return nil
}

func (r *MongoBankRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete bank %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
