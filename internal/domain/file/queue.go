package file

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job carries everything one processing run needs. Bytes travel with the
// job so the pipeline does not depend on the blob store being writable.
type Job struct {
	UserID      uuid.UUID
	FileID      uuid.UUID
	FileName    string
	Data        []byte
	SubmittedAt time.Time
}

type ProcessFunc func(ctx context.Context, job Job)

// Queue decouples upload requests from the processing pipeline: a buffered
// channel fed by handlers and drained by a fixed pool of workers. Failures
// inside a job are written to the file's status and history by the process
// function, never dropped.
type Queue struct {
	jobs chan Job
	wg   sync.WaitGroup
}

func NewQueue(size int) *Queue {
	return &Queue{jobs: make(chan Job, size)}
}

// Start launches the worker pool. Workers run detached from any request
// context.
func (q *Queue) Start(workers int, process ProcessFunc) {
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go func(id int) {
			defer q.wg.Done()
			for job := range q.jobs {
				process(context.Background(), job)
			}
			log.Printf("process worker %d stopped", id)
		}(i)
	}
}

func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops intake, drains queued jobs and waits for workers, bounded
// by ctx.
func (q *Queue) Shutdown(ctx context.Context) {
	close(q.jobs)
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("queue shutdown timed out: %v", ctx.Err())
	}
}
