package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

type SnapshotSource interface {
	Snapshot() building.Snapshot
}

// Scheduler periodically logs the tenants whose rent is due soon.
type Scheduler struct {
	cron   *cron.Cron
	source SnapshotSource
	region string
	now    func() time.Time
}

func NewScheduler(spec string, source SnapshotSource, region string) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		source: source,
		region: region,
		now:    time.Now,
	}

	if _, err := s.cron.AddFunc(spec, func() { s.Scan() }); err != nil {
		return nil, fmt.Errorf("scheduling reminder scan %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context done once a running scan finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Scan computes the current due-soon reminders and logs each one.
func (s *Scheduler) Scan() []Reminder {
	reminders := DueSoon(s.source.Snapshot(), s.now(), s.region)

	for _, r := range reminders {
		slog.Info("rent due soon",
			"tenant", r.TenantName,
			"unit", r.UnitNumber,
			"rent_day", r.RentDay,
			"whatsapp", r.WhatsApp,
		)
	}

	slog.Info("reminder scan finished", "due_soon", len(reminders))

	return reminders
}
