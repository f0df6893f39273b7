package caserequest

import (
	"context"
	"fmt"

	"caseflow/models"
	"caseflow/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// uploadAll stores every upload concurrently. The first failure cancels the
// rest and nothing from the batch is kept.
func (s *DefaultCaseRequestService) uploadAll(ctx context.Context, uploads []Upload, createdBy string) ([]models.FileRef, error) {
	for _, u := range uploads {
		if !u.Category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, u.Category)
		}
	}

	refs := make([]models.FileRef, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range uploads {
		i, u := i, u
		g.Go(func() error {
			rc, err := u.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", u.Name, err)
			}
			defer rc.Close()

			file, err := s.Files.Save(gctx, rc, u.Size, u.Name, u.ContentType, createdBy)
			if err != nil {
				return err
			}
			url, err := s.Files.URL(gctx, file.ID)
			if err != nil {
				refs[i] = models.FileRef{FileID: file.ID, Name: file.Name}
				return err
			}
			refs[i] = models.FileRef{FileID: file.ID, Name: file.Name, URL: url}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.discard(ctx, refs)
		return nil, err
	}
	return refs, nil
}

// discard removes files saved by a failed batch.
func (s *DefaultCaseRequestService) discard(ctx context.Context, refs []models.FileRef) {
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if ref.FileID == "" {
			continue
		}
		if err := s.Files.Delete(ctx, ref.FileID); err != nil {
			utils.GetLogger().Warn("Failed to discard upload", zap.String("fileId", ref.FileID), zap.Error(err))
		}
	}
}

// attach appends refs to their categories, preserving submission order.
func attach(req *models.CaseRequest, uploads []Upload, refs []models.FileRef) {
	for i, u := range uploads {
		files := req.Files(u.Category)
		*files = append(*files, refs[i])
	}
}
