package runner

import (
	"context"
	"fmt"
	"time"

	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"

	"golang.org/x/sync/errgroup"
)

// ScheduleFunc picks the plan schedule for a scenario.
type ScheduleFunc func(cfg models.ScenarioConfig) PlanSchedule

// RunAll runs every scenario to its horizon, at most workers at a time. Each scenario gets
// its own Session, so no state is shared between goroutines. Results keep the order of configs.
func RunAll(ctx context.Context, configs []models.ScenarioConfig, scheduleFor ScheduleFunc, workers int, opts Options) ([]models.Run, error) {
	if workers < 1 {
		workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}

	runs := make([]models.Run, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cfg := range configs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			session := NewSession(cfg, opts)
			if _, err := session.RunToHorizon(scheduleFor(cfg)); err != nil {
				return fmt.Errorf("scenario %s: %w", cfg.ID, err)
			}
			runs[i] = session.Run()
			opts.Logger.Info("Scenario run completed",
				logging.F(logging.FieldScenario, cfg.ID),
				logging.F(logging.FieldTotalMonths, cfg.TotalMonths),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
