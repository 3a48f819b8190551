// internal/store/dashboard.go

package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"gira-client/internal/api"
	"gira-client/internal/models"
)

// DashboardState holds one analytics snapshot plus the filter set used
// to request it. The snapshot is replaced wholesale on every
// successful fetch; only UpdateMetric patches it in place.
type DashboardState struct {
	Analytics *models.DashboardAnalytics
	IsLoading bool
	Error     string
	Filters   models.DashboardFilters
}

type Dashboard struct {
	subscriberHub

	mu     sync.RWMutex
	state  DashboardState
	client *api.Client
	log    *logrus.Logger
}

func NewDashboard(client *api.Client, log *logrus.Logger) *Dashboard {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dashboard{
		client: client,
		log:    log,
		state: DashboardState{
			Filters: models.DashboardFilters{Periode: models.PeriodeDefault},
		},
	}
}

func (d *Dashboard) Snapshot() DashboardState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := d.state
	if d.state.Analytics != nil {
		a := *d.state.Analytics
		snap.Analytics = &a
	}
	return snap
}

type dashboardFetch func(context.Context, models.DashboardFilters) (*models.DashboardAnalytics, error)

// The four fetch variants differ only in endpoint and forwarded query
// parameters; the reducer path is shared.
func (d *Dashboard) fetch(ctx context.Context, filters models.DashboardFilters, call dashboardFetch) error {
	d.mu.Lock()
	d.state.IsLoading = true
	d.state.Error = ""
	d.mu.Unlock()
	d.notify()

	analytics, err := call(ctx, filters)
	if err != nil {
		d.mu.Lock()
		d.state.IsLoading = false
		d.state.Error = api.ErrorMessage(err)
		d.mu.Unlock()
		d.notify()
		return err
	}

	d.mu.Lock()
	d.state.IsLoading = false
	d.state.Analytics = analytics
	d.state.Error = ""
	d.mu.Unlock()
	d.notify()
	return nil
}

func (d *Dashboard) FetchAnalytics(ctx context.Context, filters models.DashboardFilters) error {
	return d.fetch(ctx, filters, d.client.DashboardAnalytics)
}

func (d *Dashboard) FetchAdmin(ctx context.Context, filters models.DashboardFilters) error {
	return d.fetch(ctx, filters, d.client.DashboardAdmin)
}

func (d *Dashboard) FetchAgent(ctx context.Context, filters models.DashboardFilters) error {
	return d.fetch(ctx, filters, d.client.DashboardAgent)
}

func (d *Dashboard) FetchPassenger(ctx context.Context, filters models.DashboardFilters) error {
	return d.fetch(ctx, filters, d.client.DashboardPassenger)
}

// --- local mutators ---

// UpdateFilters shallow-merges set fields into the active filter set.
func (d *Dashboard) UpdateFilters(patch models.DashboardFilters) {
	d.mu.Lock()
	f := &d.state.Filters
	if patch.Periode != "" {
		f.Periode = patch.Periode
	}
	if patch.DateDebut != "" {
		f.DateDebut = patch.DateDebut
	}
	if patch.DateFin != "" {
		f.DateFin = patch.DateFin
	}
	if patch.Agent != "" {
		f.Agent = patch.Agent
	}
	if patch.Categorie != "" {
		f.Categorie = patch.Categorie
	}
	d.mu.Unlock()
	d.notify()
}

func (d *Dashboard) ClearFilters() {
	d.mu.Lock()
	d.state.Filters = models.DashboardFilters{Periode: models.PeriodeDefault}
	d.mu.Unlock()
	d.notify()
}

func (d *Dashboard) SetAnalytics(analytics models.DashboardAnalytics) {
	d.mu.Lock()
	d.state.Analytics = &analytics
	d.mu.Unlock()
	d.notify()
}

// UpdateMetric shallow-merges a partial snapshot into the existing
// one. Without a snapshot there is nothing to patch: silent no-op.
func (d *Dashboard) UpdateMetric(apply func(*models.DashboardAnalytics)) {
	d.mu.Lock()
	if d.state.Analytics != nil {
		apply(d.state.Analytics)
	}
	d.mu.Unlock()
	d.notify()
}

// Reset clears analytics, error and filters together.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	d.state.Analytics = nil
	d.state.Error = ""
	d.state.Filters = models.DashboardFilters{Periode: models.PeriodeDefault}
	d.mu.Unlock()
	d.notify()
}

func (d *Dashboard) ClearError() {
	d.mu.Lock()
	d.state.Error = ""
	d.mu.Unlock()
	d.notify()
}
