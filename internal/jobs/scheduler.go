package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Kenc01/MediChain-PH/domain"
)

// Scheduler runs periodic maintenance. Redis entries expire on their own;
// QR token rows in Postgres do not, so they are purged on a schedule.
type Scheduler struct {
	cron     *cron.Cron
	qrTokens domain.QRTokenRepository
	schedule string
	log      zerolog.Logger
}

func NewScheduler(qrTokens domain.QRTokenRepository, schedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		qrTokens: qrTokens,
		schedule: schedule,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.purgeExpiredQRTokens); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeExpiredQRTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.qrTokens.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("qr token purge failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("purged", n).Msg("qr tokens purged")
	}
}
