package services

import (
	"quranbot/internal/providers"
	"quranbot/internal/structures"

	"github.com/roylee0704/gron"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

// Scheduler drives the posting cycle in daemon mode: one attempt right
// away, then one per posting interval. One-shot deployments never call
// Init and leave the cadence to an external cron.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service PostingServiceInterface
	cron    *gron.Cron
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Posting.MinInterval), s.runCycle)
	s.cron.Start()

	s.runCycle()
}

func (s *Scheduler) runCycle() {
	posted, err := s.service.AttemptPost()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Posting cycle error: %s", err)
		return
	}
	if posted {
		s.logger.Infof(providers.TypeApp, "Cycle completed, verse posted")
	} else {
		s.logger.Infof(providers.TypeApp, "Cycle completed, nothing posted")
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	if err := s.service.Persist(); err != nil {
		s.logger.Errorf(providers.TypeState, "Error while persisting state: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service PostingServiceInterface) SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
