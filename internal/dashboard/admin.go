// Package dashboard loads the admin dashboard: counters, pending provider
// applications and open reports.
package dashboard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hayawalid/smartexplorers/internal/adapter/api"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/screen"
)

// AdminAPI is the subset of the admin client the dashboard uses.
type AdminAPI interface {
	Stats(ctx context.Context, opts ...api.CallOption) (domain.Payload, error)
	ProviderRequests(ctx context.Context, status domain.ProviderRequestStatus, opts ...api.CallOption) ([]domain.Payload, error)
	Reports(ctx context.Context, opts ...api.CallOption) ([]domain.Payload, error)
	ResolveReport(ctx context.Context, reportID string, opts ...api.CallOption) (bool, error)
}

// State is what the dashboard renders. Sections are loaded independently.
type State struct {
	Stats            domain.Payload
	ProviderRequests []domain.Payload
	Reports          []domain.Payload
	LoadedAt         time.Time
}

// Admin holds the dashboard state for one screen.
type Admin struct {
	api   AdminAPI
	scope *screen.Scope

	mu    sync.Mutex
	state State
}

// NewAdmin creates a dashboard bound to scope.
func NewAdmin(adminAPI AdminAPI, scope *screen.Scope) *Admin {
	return &Admin{api: adminAPI, scope: scope}
}

// State returns a copy of the current state.
func (a *Admin) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state
	s.ProviderRequests = append([]domain.Payload(nil), a.state.ProviderRequests...)
	s.Reports = append([]domain.Payload(nil), a.state.Reports...)
	return s
}

func (a *Admin) update(fn func(*State)) {
	a.scope.Apply(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		fn(&a.state)
	})
}

// Load fetches all sections concurrently. Each section is applied as soon as
// it arrives, unless the screen has been disposed.
func (a *Admin) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := a.api.Stats(ctx)
		if err != nil {
			return err
		}
		a.update(func(s *State) { s.Stats = stats })
		return nil
	})
	g.Go(func() error {
		requests, err := a.api.ProviderRequests(ctx, domain.ProviderRequestPending)
		if err != nil {
			return err
		}
		a.update(func(s *State) { s.ProviderRequests = requests })
		return nil
	})
	g.Go(func() error {
		reports, err := a.api.Reports(ctx)
		if err != nil {
			return err
		}
		a.update(func(s *State) { s.Reports = reports })
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.update(func(s *State) { s.LoadedAt = time.Now() })
	return nil
}

// Resolve resolves a report and drops it from the list when the backend
// accepted it.
func (a *Admin) Resolve(ctx context.Context, reportID string) (bool, error) {
	ok, err := a.api.ResolveReport(ctx, reportID)
	if err != nil || !ok {
		return false, err
	}

	a.update(func(s *State) {
		kept := s.Reports[:0]
		for _, r := range s.Reports {
			if r.String("report_id") != reportID {
				kept = append(kept, r)
			}
		}
		s.Reports = kept
	})
	return true, nil
}
