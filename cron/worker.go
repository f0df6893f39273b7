package cron

import (
	"caseflow/config"
	"caseflow/services/tasks"
	"caseflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt points asynq at the queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitCleanupWorker starts the file cleanup worker in the background. The
// caller shuts the returned server down.
func InitCleanupWorker(files tasks.FileDeleter) (*asynq.Server, error) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeFileCleanup, tasks.HandleFileCleanupTask(files))

	if err := srv.Start(mux); err != nil {
		logger.Error("Failed to start file cleanup worker", zap.Error(err))
		return nil, err
	}
	logger.Info("File cleanup worker started")
	return srv, nil
}
