package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"caseflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeFileCleanup = "files:cleanup"

// FileCleanupPayload names the stored files of a deleted case request.
type FileCleanupPayload struct {
	RequestID string   `json:"requestId"`
	FileIDs   []string `json:"fileIds"`
}

func NewFileCleanupTask(payload FileCleanupPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeFileCleanup, b)
	// Cleanup is best effort and runs once.
	opts := []asynq.Option{asynq.MaxRetry(0)}
	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the queue uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CleanupQueue schedules blob deletion through asynq.
type CleanupQueue struct {
	Client Enqueuer
}

func (q *CleanupQueue) EnqueueFileCleanup(ctx context.Context, requestID string, fileIDs []string) error {
	task, opts, err := NewFileCleanupTask(FileCleanupPayload{RequestID: requestID, FileIDs: fileIDs})
	if err != nil {
		return err
	}
	info, err := q.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue file cleanup: %w", err)
	}
	utils.GetLogger().Debug("File cleanup enqueued",
		zap.String("requestId", requestID),
		zap.String("taskId", info.ID))
	return nil
}

// FileDeleter removes a stored file and its blob.
type FileDeleter interface {
	Delete(ctx context.Context, id string) error
}

// HandleFileCleanupTask deletes every file in the payload, continuing past
// individual failures and reporting the first one.
func HandleFileCleanupTask(files FileDeleter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p FileCleanupPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid file cleanup payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		var firstErr error
		for _, id := range p.FileIDs {
			if err := files.Delete(ctx, id); err != nil {
				logger.Warn("Failed to delete file", zap.String("fileId", id), zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		logger.Info("File cleanup finished",
			zap.String("requestId", p.RequestID),
			zap.Int("files", len(p.FileIDs)))
		return firstErr
	}
}
