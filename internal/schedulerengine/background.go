package schedulerengine

import (
	"context"
	"sync"
	"time"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
)

// Task is a periodic housekeeping job
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// SchedulerEngine runs housekeeping tasks on their own tickers until stopped
type SchedulerEngine struct {
	tasks  []Task
	logger primary.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSchedulerEngine(logger primary.Logger, tasks ...Task) *SchedulerEngine {
	return &SchedulerEngine{
		tasks:  tasks,
		logger: logger,
	}
}

func (s *SchedulerEngine) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, task := range s.tasks {
		if task.Interval <= 0 {
			s.logger.Warn("Skipping housekeeping task without interval", "task", task.Name)
			continue
		}

		s.wg.Add(1)
		go func(task Task) {
			defer s.wg.Done()
			ticker := time.NewTicker(task.Interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					task.Run(ctx)
				}
			}
		}(task)
		s.logger.Debug("Started housekeeping task", "task", task.Name, "interval", task.Interval)
	}
}

// Stop cancels every task and waits for running ones to return
func (s *SchedulerEngine) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
