package stores

import (
	"context"
	"stashspace/core"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Supervisor owns store connectivity. It establishes the connection at
// startup, retries failures indefinitely so the HTTP server can come up
// before the database does, and exposes the live state to the health
// endpoint.
type Supervisor struct {
	store core.SignupStore

	// RetryInitial seeds the backoff between failed connection attempts;
	// the delay grows toward RetryMax. ProbeInterval paces the steady-state
	// health probe once connected.
	RetryInitial  time.Duration
	RetryMax      time.Duration
	ProbeInterval time.Duration
	PingTimeout   time.Duration

	connected atomic.Bool
}

func NewSupervisor(store core.SignupStore) *Supervisor {
	return &Supervisor{
		store:         store,
		RetryInitial:  5 * time.Second,
		RetryMax:      time.Minute,
		ProbeInterval: 15 * time.Second,
		PingTimeout:   5 * time.Second,
	}
}

// Connected reports the last observed store connectivity.
func (s *Supervisor) Connected() bool {
	return s.connected.Load()
}

// Run blocks until ctx is done, alternating between connect-with-retry and
// steady probing. Store failures are never fatal to the process.
func (s *Supervisor) Run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := s.connect(ctx); err != nil {
			return
		}
		s.watch(ctx)
	}
}

// connect pings until the store answers. It returns an error only when ctx
// is canceled; every other failure is logged and retried.
func (s *Supervisor) connect(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.RetryInitial
	policy.MaxInterval = s.RetryMax
	policy.MaxElapsedTime = 0 // retry until canceled

	attempt := 0
	notify := func(err error, next time.Duration) {
		attempt++
		logrus.WithFields(logrus.Fields{
			"attempt":  attempt,
			"retry_in": next,
			"error":    err,
		}).Warn("Store connection failed, retrying")
	}
	if err := backoff.RetryNotify(func() error {
		return s.ping(ctx)
	}, backoff.WithContext(policy, ctx), notify); err != nil {
		return err
	}

	s.connected.Store(true)
	logrus.Info("Store connection established")
	return nil
}

// watch probes the store until a ping fails or ctx is done. On failure the
// connected flag drops and Run goes back to connect.
func (s *Supervisor) watch(ctx context.Context) {
	ticker := time.NewTicker(s.ProbeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ping(ctx); err != nil {
				s.connected.Store(false)
				logrus.WithField("error", err).Warn("Store connection lost")
				return
			}
		}
	}
}

func (s *Supervisor) ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.PingTimeout)
	defer cancel()
	return s.store.Ping(pingCtx)
}
