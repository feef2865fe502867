package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	syncuc "investorhub/internal/usecase/sync"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron entries for background work. Today that is
// just the MifosX loan sync.
type Scheduler struct {
	cron *cron.Cron
	sync *syncuc.Usecase
	ctx  context.Context
}

func New(ctx context.Context, sync *syncuc.Usecase) *Scheduler {
	return &Scheduler{cron: cron.New(), sync: sync, ctx: ctx}
}

// RegisterSync wires the sync job at the given cron spec.
func (s *Scheduler) RegisterSync(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSync); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) runSync() {
	log.Println("[INFO] running mifosx sync")
	if err := s.sync.Run(s.ctx); err != nil {
		if errors.Is(err, syncuc.ErrAlreadyRunning) {
			log.Println("[WARN] sync tick skipped, previous run still in flight")
			return
		}
		log.Printf("[ERROR] mifosx sync: %v", err)
	}
}
