// Package scheduler registers the daily trigger and runs the workflow when it fires.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/leadbrief/internal/model"
)

// DailyHandler is the entry point name recorded on the trigger.
const DailyHandler = "daily_run"

// Install replaces every registered trigger with a single daily trigger for
// handler at hour:00 in tz. Running it again leaves exactly one trigger.
func Install(ctx context.Context, reg model.TriggerRegistry, handler string, hour int, tz string) (model.Trigger, error) {
	if hour < 0 || hour > 23 {
		return model.Trigger{}, fmt.Errorf("hour must be between 0 and 23, got %d", hour)
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return model.Trigger{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}

	if _, err := Clear(ctx, reg); err != nil {
		return model.Trigger{}, err
	}

	t := model.Trigger{
		ID:        uuid.NewString(),
		Handler:   handler,
		Hour:      hour,
		Timezone:  tz,
		CreatedAt: time.Now().UTC(),
	}
	if err := reg.CreateTrigger(ctx, t); err != nil {
		return model.Trigger{}, fmt.Errorf("create trigger: %w", err)
	}
	return t, nil
}

// Clear deletes all registered triggers and returns how many were removed.
func Clear(ctx context.Context, reg model.TriggerRegistry) (int, error) {
	triggers, err := reg.ListTriggers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list triggers: %w", err)
	}
	for _, t := range triggers {
		if err := reg.DeleteTrigger(ctx, t.ID); err != nil {
			return 0, fmt.Errorf("delete trigger %s: %w", t.ID, err)
		}
	}
	return len(triggers), nil
}

// Current returns the most recently created trigger, or model.ErrNoTrigger.
func Current(ctx context.Context, reg model.TriggerRegistry) (model.Trigger, error) {
	triggers, err := reg.ListTriggers(ctx)
	if err != nil {
		return model.Trigger{}, fmt.Errorf("list triggers: %w", err)
	}
	if len(triggers) == 0 {
		return model.Trigger{}, model.ErrNoTrigger
	}
	latest := triggers[0]
	for _, t := range triggers[1:] {
		if t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	return latest, nil
}

// NextFire returns the next hour:00 in loc strictly after now: today if that
// is still ahead, otherwise tomorrow.
func NextFire(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	y, m, d := local.Date()
	next := time.Date(y, m, d, hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(y, m, d+1, hour, 0, 0, 0, loc)
	}
	return next
}
