package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/hibiken/asynq"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (e *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

type recordingDeleter struct {
	deleted []string
	failOn  string
}

func (d *recordingDeleter) Delete(ctx context.Context, id string) error {
	if id == d.failOn {
		return errors.New("boom")
	}
	d.deleted = append(d.deleted, id)
	return nil
}

func TestEnqueueFileCleanup(t *testing.T) {
	enq := &recordingEnqueuer{}
	q := &CleanupQueue{Client: enq}
	if err := q.EnqueueFileCleanup(context.Background(), "req-1", []string{"f1", "f2"}); err != nil {
		t.Fatalf("EnqueueFileCleanup: %v", err)
	}
	if len(enq.tasks) != 1 || enq.tasks[0].Type() != TypeFileCleanup {
		t.Fatalf("unexpected tasks %+v", enq.tasks)
	}
	var p FileCleanupPayload
	if err := json.Unmarshal(enq.tasks[0].Payload(), &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.RequestID != "req-1" || !reflect.DeepEqual(p.FileIDs, []string{"f1", "f2"}) {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestHandleFileCleanupTask(t *testing.T) {
	task, _, _ := NewFileCleanupTask(FileCleanupPayload{RequestID: "req-1", FileIDs: []string{"f1", "bad", "f3"}})
	del := &recordingDeleter{failOn: "bad"}

	err := HandleFileCleanupTask(del)(context.Background(), task)
	if err == nil {
		t.Fatalf("expected first failure to be reported")
	}
	if !reflect.DeepEqual(del.deleted, []string{"f1", "f3"}) {
		t.Fatalf("cleanup should continue past failures, deleted %v", del.deleted)
	}
}

func TestHandleFileCleanupTaskBadPayload(t *testing.T) {
	task := asynq.NewTask(TypeFileCleanup, []byte("{"))
	if err := HandleFileCleanupTask(&recordingDeleter{})(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
