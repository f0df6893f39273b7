package caserequest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"caseflow/database"
	"caseflow/models"
	"caseflow/utils"

	"go.uber.org/zap"
)

func (s *DefaultCaseRequestService) CreateRequest(ctx context.Context, input models.CaseRequestInput, uploads []Upload, createdBy string) (*models.CaseRequest, error) {
	if !input.RequestType.Valid() {
		return nil, ErrInvalidRequestType
	}
	req := &models.CaseRequest{CreatedBy: createdBy}
	normalizeInput(&input).Apply(req)
	req.Normalize()

	refs, err := s.uploadAll(ctx, uploads, createdBy)
	if err != nil {
		return nil, err
	}
	attach(req, uploads, refs)

	if err := s.Repo.Create(ctx, req); err != nil {
		s.discard(ctx, refs)
		return nil, fmt.Errorf("failed to save case request: %w", err)
	}
	utils.GetLogger().Info("Case request created",
		zap.String("id", req.ID),
		zap.String("requestType", string(req.RequestType)),
		zap.Int("files", len(refs)))
	return req, nil
}

func (s *DefaultCaseRequestService) UpdateRequest(ctx context.Context, id string, input models.CaseRequestInput, uploads []Upload) (*models.CaseRequest, error) {
	if !input.RequestType.Valid() {
		return nil, ErrInvalidRequestType
	}
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizeInput(&input).Apply(req)

	refs, err := s.uploadAll(ctx, uploads, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	attach(req, uploads, refs)
	req.UpdatedAt = time.Now()

	if err := s.Repo.Replace(ctx, req); err != nil {
		s.discard(ctx, refs)
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update case request %s: %w", id, err)
	}
	req.Normalize()
	return req, nil
}

func (s *DefaultCaseRequestService) GetRequest(ctx context.Context, id string) (*models.CaseRequest, error) {
	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	req.Normalize()
	return req, nil
}

func (s *DefaultCaseRequestService) ListRequests(ctx context.Context) ([]models.CaseRequest, error) {
	records, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Normalize()
	}
	return records, nil
}

func normalizeInput(in *models.CaseRequestInput) *models.CaseRequestInput {
	in.EINList = SplitList(in.EINList)
	in.SSNList = SplitList(in.SSNList)
	return in
}

// SplitList flattens repeated and comma-separated values, trimming blanks.
func SplitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
