package ratelimit

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Sweeper runs the limiter's eviction pass on a schedule. Created once at
// process start and stopped at shutdown.
type Sweeper struct {
	cron *cron.Cron
}

func NewSweeper(w *SlidingWindow) (*Sweeper, error) {
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", w.Sweep); err != nil {
		return nil, err
	}
	return &Sweeper{cron: c}, nil
}

func (s *Sweeper) Start() {
	slog.Info("rate limit sweeper started", "interval", "1m")
	s.cron.Start()
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}
