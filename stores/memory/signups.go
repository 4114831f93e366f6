package memory

import (
	"context"
	"stashspace/core"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type signupStore struct {
	mu         sync.RWMutex
	businesses []core.BusinessSignup
	providers  []core.ProviderSignup
}

// NewSignupStore keeps signups in process memory. Intended for development
// and tests; everything is gone on restart.
func NewSignupStore() core.SignupStore {
	return &signupStore{}
}

func (s *signupStore) CreateBusiness(ctx context.Context, signup *core.BusinessSignup) (string, error) {
	if err := core.Prepare(signup, ulid.Make().String(), time.Now().UTC()); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.businesses = append(s.businesses, *signup)
	s.mu.Unlock()
	return signup.ID, nil
}

func (s *signupStore) CreateProvider(ctx context.Context, signup *core.ProviderSignup) (string, error) {
	if err := core.Prepare(signup, ulid.Make().String(), time.Now().UTC()); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.providers = append(s.providers, *signup)
	s.mu.Unlock()
	return signup.ID, nil
}

// ListBusinesses walks the slice backwards; records append in creation
// order, so the result is newest first.
func (s *signupStore) ListBusinesses(ctx context.Context) ([]core.BusinessSignup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.BusinessSignup, 0, len(s.businesses))
	for i := len(s.businesses) - 1; i >= 0; i-- {
		out = append(out, s.businesses[i])
	}
	return out, nil
}

func (s *signupStore) ListProviders(ctx context.Context) ([]core.ProviderSignup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ProviderSignup, 0, len(s.providers))
	for i := len(s.providers) - 1; i >= 0; i-- {
		out = append(out, s.providers[i])
	}
	return out, nil
}

func (s *signupStore) Ping(ctx context.Context) error { return nil }

func (s *signupStore) Close(ctx context.Context) error { return nil }
