package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

const defaultCheckInterval = time.Minute

// ExpiryWatcher periodically ends sessions whose credential has expired.
type ExpiryWatcher struct {
	session  ports.SessionService
	interval time.Duration
	log      zerolog.Logger
}

// NewExpiryWatcher returns a watcher polling every interval.
// If interval <= 0, defaultCheckInterval is used.
func NewExpiryWatcher(session ports.SessionService, interval time.Duration, log zerolog.Logger) *ExpiryWatcher {
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	return &ExpiryWatcher{session: session, interval: interval, log: log}
}

// Run checks once immediately, then on every tick until ctx is cancelled.
func (w *ExpiryWatcher) Run(ctx context.Context) {
	w.log.Debug().Dur("interval", w.interval).Msg("starting session expiry watcher")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Msg("stopping session expiry watcher")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check performs one liveness check and reports whether it ended the session.
func (w *ExpiryWatcher) Check(ctx context.Context) bool {
	if w.session.State() != domain.StateAuthenticated {
		return false
	}
	credential, ok := w.session.Credential(ctx)
	if !ok {
		// Identity without credential: treat like an invalid session.
		if err := w.session.Logout(ctx); err != nil {
			w.log.Warn().Err(err).Msg("logout after missing credential")
		}
		return true
	}
	if !w.session.IsExpired(credential) {
		return false
	}
	if w.session.Invalidate(ctx, credential, "expired") {
		w.log.Info().Msg("session expired, please log in again")
		return true
	}
	return false
}
