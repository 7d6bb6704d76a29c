package session

import "context"

// Watch funnels out-of-process changes to the session keys into re-hydration
// and the invalidation signal, so a logout in one console process is observed
// by every other process sharing the keystore. Blocks until ctx is done; safe
// to run in its own goroutine next to the in-process signal, which covers
// same-process observers without any watcher.
func (s *Store) Watch(ctx context.Context) error {
	return s.keys.Watch(ctx, func() {
		if err := s.CheckAuth(ctx); err != nil {
			s.log.Warn().Err(err).Msg("rehydrate after key change failed")
		}
		s.publish()
	})
}
