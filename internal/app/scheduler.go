package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DraftEvictor хранилище черновиков, которые надо периодически чистить
type DraftEvictor interface {
	EvictExpired(ttl time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	drafts   DraftEvictor
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик. Черновики проверяются
// с периодом в четверть ttl, но не реже раза в минуту.
func NewScheduler(drafts DraftEvictor, ttl time.Duration, logger *zap.Logger) *Scheduler {
	interval := ttl / 4
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &Scheduler{
		drafts:   drafts,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("draft_ttl", s.ttl))

	go s.runDraftEvictionTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDraftEvictionTask периодически удаляет неподтверждённые черновики
func (s *Scheduler) runDraftEvictionTask(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictDrafts()
		case <-s.stopChan:
			s.logger.Info("Draft eviction task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Draft eviction task cancelled")
			return
		}
	}
}

func (s *Scheduler) evictDrafts() {
	if n := s.drafts.EvictExpired(s.ttl); n > 0 {
		s.logger.Info("Expired drafts evicted", zap.Int("count", n))
	}
}
