// Package jobs runs the session expiry sweep: without it an expired record
// sits in the keystore until the next user interaction touches auth state.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"adminpro/console/internal/session"
)

type Janitor struct {
	cron     *cron.Cron
	store    *session.Store
	schedule string
	log      zerolog.Logger
}

func NewJanitor(store *session.Store, schedule string, log zerolog.Logger) *Janitor {
	return &Janitor{
		cron:     cron.New(cron.WithSeconds()),
		store:    store,
		schedule: schedule,
		log:      log,
	}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop waits briefly for a running sweep to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

// sweep re-runs hydration; CheckAuth purges an expired record as a side
// effect and observers see the state flip on their next read.
func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := j.store.CheckAuth(ctx); err != nil {
		j.log.Error().Err(err).Msg("session sweep failed")
	}
}
