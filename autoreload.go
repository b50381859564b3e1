package servicemap

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoReloader = (*servicemap)(nil)

// AutoReloader provides controls for periodic reloads of the datasets.
type AutoReloader interface {
	// AutoReloadOn begins periodic reloads at the configured interval
	AutoReloadOn() error

	// AutoReloadOff stops periodic reloads
	AutoReloadOff() error
}

// AutoReloadOn begins periodic reloads at the configured interval. A
// reload that fails or exceeds its timeout is logged and the previous
// build keeps serving; the next tick tries again.
func (s *servicemap) AutoReloadOn() error {
	interval := s.options.autoReloadInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "autoReloadInterval",
			Value:   interval,
			Message: "reload interval must be positive",
		}
	}

	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	s.stopAutoReload()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.autoCancel, s.autoDone = cancel, done

	go func() {
		defer close(done)
		s.reloadEvery(ctx, interval, s.options.reloadTimeout)
	}()
	return nil
}

// AutoReloadOff stops periodic reloads. A reload already running is
// canceled; AutoReloadOff does not wait for it.
func (s *servicemap) AutoReloadOff() error {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	s.stopAutoReload()
	return nil
}

func (s *servicemap) stopAutoReload() {
	if s.autoCancel != nil {
		s.autoCancel()
		s.autoCancel, s.autoDone = nil, nil
	}
}

// reloadEvery reloads on each tick until ctx is done. Only ctx ends the
// loop; a reload's own deadline does not.
func (s *servicemap) reloadEvery(ctx context.Context, interval, timeout time.Duration) {
	logger := logging.OrDefault(s.options.logger).With().
		Str("operation", "auto_reload").
		Dur("interval", interval).
		Logger()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		reloadCtx, cancel := context.WithTimeout(ctx, timeout)
		err := s.Reload(reloadCtx)
		cancel()

		switch {
		case err == nil:
		case ctx.Err() != nil:
			return
		case stderrors.Is(err, context.DeadlineExceeded):
			logger.Warn().Err(err).Dur("timeout", timeout).Msg("Auto-reload timed out, keeping previous build")
		default:
			logger.Error().Err(err).Msg("Auto-reload failed, keeping previous build")
		}
	}
}
