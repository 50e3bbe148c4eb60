// Package jobs runs periodic background maintenance.
package jobs

import (
	"fmt"
	"log"
	"strings"

	"smartparking/internal/ledger"

	"github.com/robfig/cron/v3"
)

// SnapshotJob persists the in-memory ledger to disk.
type SnapshotJob struct {
	Ledger *ledger.Memory
	Path   string
}

// Run saves one snapshot.
func (j SnapshotJob) Run() error {
	if j.Ledger == nil || strings.TrimSpace(j.Path) == "" {
		return nil
	}
	if err := ledger.SaveFile(j.Path, j.Ledger); err != nil {
		return fmt.Errorf("snapshot job: %w", err)
	}
	log.Printf("[JOBS] action=snapshot path=%s bookings=%d", j.Path, j.Ledger.Len())
	return nil
}

// Scheduler wraps a cron instance whose jobs log their own failures.
type Scheduler struct {
	c *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{c: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger), cron.Recover(cron.DefaultLogger)))}
}

// Every registers fn under a cron spec ("@every 1m", "*/5 * * * *").
func (s *Scheduler) Every(spec, name string, fn func() error) error {
	_, err := s.c.AddFunc(spec, func() {
		if err := fn(); err != nil {
			log.Printf("[JOBS] action=%s err=%v", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop stops scheduling and waits for running jobs.
func (s *Scheduler) Stop() { <-s.c.Stop().Done() }
