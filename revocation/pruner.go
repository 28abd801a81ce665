package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-gym-server/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Pruner periodically deletes revocation records whose token expired more
// than grace ago.
type Pruner struct {
	registry Registry
	grace    time.Duration
	nowFunc  func() time.Time
	recorder metrics.Recorder
	cron     *cron.Cron
}

type PrunerOption func(*Pruner)

func WithPrunerNowFunc(now func() time.Time) PrunerOption {
	return func(p *Pruner) {
		p.nowFunc = now
	}
}

func WithRecorder(recorder metrics.Recorder) PrunerOption {
	return func(p *Pruner) {
		p.recorder = recorder
	}
}

// NewPruner schedules RunOnce with a standard five-field cron spec or a
// descriptor such as "@hourly".
func NewPruner(registry Registry, schedule string, grace time.Duration, options ...PrunerOption) (*Pruner, error) {
	if registry == nil {
		return nil, fmt.Errorf("[NewPruner] registry is required")
	}
	if grace < 0 {
		return nil, fmt.Errorf("[NewPruner] grace must not be negative")
	}
	p := &Pruner{
		registry: registry,
		grace:    grace,
		nowFunc:  time.Now,
		recorder: metrics.Nop{},
		cron:     cron.New(),
	}
	for _, opt := range options {
		opt(p)
	}

	if _, err := p.cron.AddFunc(schedule, func() {
		_, _ = p.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("[NewPruner] invalid schedule %q: %w", schedule, err)
	}
	return p, nil
}

// RunOnce prunes immediately and returns the number of removed records.
func (p *Pruner) RunOnce(ctx context.Context) (int64, error) {
	before := p.nowFunc().Add(-p.grace)
	n, err := p.registry.Prune(ctx, before)
	if err != nil {
		log.Err(err).Msg("pruning revoked tokens failed")
		return 0, err
	}
	p.recorder.RecordPruned(n)
	log.Info().Int64("removed", n).Time("before", before).Msg("pruned revoked tokens")
	return n, nil
}

func (p *Pruner) Start() {
	p.cron.Start()
}

// Stop halts the schedule and returns a context that is done once a running
// prune has finished.
func (p *Pruner) Stop() context.Context {
	return p.cron.Stop()
}
