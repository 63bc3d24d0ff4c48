package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	seedQueueSize  = 100
	seedJobTimeout = 10 * time.Second
)

// Seeder writes the default week for a user that has no entries.
type Seeder interface {
	GenerateDefaultSleepData(ctx context.Context, userID string) (bool, error)
}

type SeedJob struct {
	UserID string
}

// SeedWorker generates default sleep data off the request path. Jobs are
// dropped, not blocked on, when the queue is full.
type SeedWorker struct {
	seeder Seeder
	jobs   chan SeedJob
	logger *zap.Logger
}

func NewSeedWorker(seeder Seeder, logger *zap.Logger) *SeedWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedWorker{
		seeder: seeder,
		jobs:   make(chan SeedJob, seedQueueSize),
		logger: logger.Named("seed_worker"),
	}
}

// Start consumes jobs until ctx is cancelled. The returned channel closes
// once the loop has exited.
func (w *SeedWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.logger.Info("seed worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("seed worker shutting down")
				return
			}
		}
	}()
	return done
}

func (w *SeedWorker) Enqueue(userID string) {
	select {
	case w.jobs <- SeedJob{UserID: userID}:
	default:
		w.logger.Warn("seed queue full, dropping job", zap.String("user_id", userID))
	}
}

func (w *SeedWorker) processJob(ctx context.Context, job SeedJob) {
	ctx, cancel := context.WithTimeout(ctx, seedJobTimeout)
	defer cancel()

	generated, err := w.seeder.GenerateDefaultSleepData(ctx, job.UserID)
	if err != nil {
		w.logger.Error("default data generation failed", zap.String("user_id", job.UserID), zap.Error(err))
		return
	}
	if generated {
		w.logger.Info("default sleep data generated", zap.String("user_id", job.UserID))
	}
}
