package widget

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Watch calls fn with a fresh timeline immediately and then on every tick of
// schedule until ctx is done. schedule accepts standard five-field specs and
// descriptors such as "@hourly" or "@every 10m".
func (p *Provider) Watch(ctx context.Context, schedule string, fn func(Timeline)) error {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		fn(p.Timeline(time.Now()))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	fn(p.Timeline(time.Now()))

	c.Start()
	p.logger.Debug("widget watch started", "schedule", schedule)

	<-ctx.Done()

	// Wait for a running tick to finish.
	<-c.Stop().Done()

	return nil
}
