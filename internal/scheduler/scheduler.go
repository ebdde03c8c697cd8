package scheduler

import (
	"context"
	"fmt"
	"time"

	"go-wfm/internal/config"
	"go-wfm/internal/features/hours"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the periodic background jobs. Currently that is a single
// auto clock-out sweep that closes records employees forgot to close,
// enabled through AUTO_CLOCK_OUT.
type Scheduler struct {
	cfg          *config.Config
	hoursService hours.HoursService
	logger       *zap.Logger
	cron         *cron.Cron
}

func NewScheduler(cfg *config.Config, hoursService hours.HoursService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:          cfg,
		hoursService: hoursService,
		logger:       logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.AutoClockOut {
		s.logger.Info("auto clock-out disabled, scheduler not started")
		return nil
	}

	s.cron = cron.New()

	after := time.Duration(s.cfg.AutoClockOutAfterHrs) * time.Hour
	_, err := s.cron.AddFunc(s.cfg.AutoClockOutSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		closed, err := s.hoursService.AutoClockOut(ctx, after)
		if err != nil {
			s.logger.Error("auto clock-out sweep failed", zap.Error(err))
			return
		}
		if closed > 0 {
			s.logger.Info("auto clock-out sweep closed records", zap.Int("closed", closed))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid auto clock-out schedule %q: %w", s.cfg.AutoClockOutSchedule, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("schedule", s.cfg.AutoClockOutSchedule),
		zap.Int("after_hours", s.cfg.AutoClockOutAfterHrs))
	return nil
}

func (s *Scheduler) Stop() error {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	return nil
}
