package main

import (
	"context"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/robfig/cron/v3"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// cronScheduler runs registered jobs on cron expressions. Register matches
// sitecmd.CronRegistrar.
type cronScheduler struct {
	cron   *cron.Cron
	logger interfaces.Logger
}

func newCronScheduler(logger interfaces.Logger) *cronScheduler {
	return &cronScheduler{cron: cron.New(), logger: logging.OrNoOp(logger)}
}

func (s *cronScheduler) Register(cfg command.HandlerConfig, handler any) error {
	job, ok := handler.(func() error)
	if !ok {
		return fmt.Errorf("schedule: unsupported handler %T", handler)
	}
	expression := cfg.Expression
	_, err := s.cron.AddFunc(expression, func() {
		if err := job(); err != nil {
			logging.WithFields(s.logger, map[string]any{
				"expression": expression,
				"error":      err,
			}).Error("schedule.job.failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", expression, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done and running jobs
// have finished.
func (s *cronScheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}
