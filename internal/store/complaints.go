// internal/store/complaints.go

package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"gira-client/internal/api"
	"gira-client/internal/models"
	"gira-client/pkg/validator"
)

// ComplaintsState is the complaint collection slice. Items ordering is
// insertion-order for local prepends and server-order after FetchList;
// the store never reconciles the two.
type ComplaintsState struct {
	Items            []models.Complaint
	CurrentComplaint *models.Complaint
	IsLoading        bool
	Error            string
	Filters          models.ComplaintFilters
	Pagination       models.Pagination
}

type Complaints struct {
	subscriberHub

	mu     sync.RWMutex
	state  ComplaintsState
	client *api.Client
	log    *logrus.Logger
}

func NewComplaints(client *api.Client, log *logrus.Logger) *Complaints {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Complaints{
		client: client,
		log:    log,
		state: ComplaintsState{
			Pagination: models.Pagination{Page: 0, Size: 10},
		},
	}
}

// Snapshot returns a copy of the current state. Slices are copied one
// level deep; entities themselves are treated as immutable by callers.
func (c *Complaints) Snapshot() ComplaintsState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.state
	snap.Items = append([]models.Complaint(nil), c.state.Items...)
	if c.state.CurrentComplaint != nil {
		cur := *c.state.CurrentComplaint
		snap.CurrentComplaint = &cur
	}
	return snap
}

func (c *Complaints) begin() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *Complaints) fail(err error) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = api.ErrorMessage(err)
	c.mu.Unlock()
	c.notify()
}

// FetchList replaces the whole items collection and the pagination
// block with the server's page. Previous pages are discarded; there is
// no infinite-scroll accumulation.
func (c *Complaints) FetchList(ctx context.Context, page, size int, filters models.ComplaintFilters) error {
	c.begin()

	res, err := c.client.ListComplaints(ctx, page, size, filters)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Items = res.Content
	c.state.Pagination = models.Pagination{
		Page:       res.Number,
		Size:       res.Size,
		Total:      res.TotalElements,
		TotalPages: res.TotalPages,
	}
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// FetchByID loads one complaint into CurrentComplaint.
func (c *Complaints) FetchByID(ctx context.Context, id string) error {
	c.begin()

	complaint, err := c.client.GetComplaint(ctx, id)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.state.IsLoading = false
	c.state.CurrentComplaint = complaint
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// Create submits the form and prepends the server-returned entity to
// the front of the list without waiting for a FetchList.
func (c *Complaints) Create(ctx context.Context, form models.ComplaintForm) (*models.Complaint, error) {
	c.begin()

	if err := validator.Struct(form); err != nil {
		c.fail(err)
		return nil, err
	}

	complaint, err := c.client.CreateComplaint(ctx, form)
	if err != nil {
		c.fail(err)
		return nil, err
	}

	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Items = append([]models.Complaint{*complaint}, c.state.Items...)
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
	return complaint, nil
}

// UpdateStatus applies the server-confirmed entity to the list entry
// and to CurrentComplaint when the ids match, keeping both views
// consistent. A missing id is a silent no-op.
func (c *Complaints) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	c.begin()

	updated, err := c.client.UpdateComplaintStatus(ctx, id, status)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.state.IsLoading = false
	c.replaceLocked(*updated)
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// AddComment appends the created comment to the complaint's comment
// list in both views. Appends are order-preserving and not deduped; a
// comment delivered twice appears twice.
func (c *Complaints) AddComment(ctx context.Context, id string, form models.CommentForm) error {
	c.begin()

	if err := validator.Struct(form); err != nil {
		c.fail(err)
		return err
	}

	comment, err := c.client.AddComment(ctx, id, form)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.state.IsLoading = false
	for i := range c.state.Items {
		if c.state.Items[i].ID == id {
			c.state.Items[i].Commentaires = append(c.state.Items[i].Commentaires, *comment)
			break
		}
	}
	if c.state.CurrentComplaint != nil && c.state.CurrentComplaint.ID == id {
		c.state.CurrentComplaint.Commentaires = append(c.state.CurrentComplaint.Commentaires, *comment)
	}
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// --- local mutators, no network effect ---

func (c *Complaints) SetCurrent(complaint *models.Complaint) {
	c.mu.Lock()
	c.state.CurrentComplaint = complaint
	c.mu.Unlock()
	c.notify()
}

// UpdateFilters shallow-merges: set fields override, others are kept.
func (c *Complaints) UpdateFilters(patch models.ComplaintFilters) {
	c.mu.Lock()
	f := &c.state.Filters
	if patch.Statut != nil {
		f.Statut = patch.Statut
	}
	if patch.Priorite != nil {
		f.Priorite = patch.Priorite
	}
	if patch.Categorie != nil {
		f.Categorie = patch.Categorie
	}
	if patch.Agent != nil {
		f.Agent = patch.Agent
	}
	if patch.DateDebut != "" {
		f.DateDebut = patch.DateDebut
	}
	if patch.DateFin != "" {
		f.DateFin = patch.DateFin
	}
	if patch.Recherche != "" {
		f.Recherche = patch.Recherche
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Complaints) ClearFilters() {
	c.mu.Lock()
	c.state.Filters = models.ComplaintFilters{}
	c.mu.Unlock()
	c.notify()
}

func (c *Complaints) UpdatePagination(patch PaginationPatch) {
	c.mu.Lock()
	p := &c.state.Pagination
	if patch.Page != nil {
		p.Page = *patch.Page
	}
	if patch.Size != nil {
		p.Size = *patch.Size
	}
	if patch.Total != nil {
		p.Total = *patch.Total
	}
	if patch.TotalPages != nil {
		p.TotalPages = *patch.TotalPages
	}
	c.mu.Unlock()
	c.notify()
}

// Add prepends a complaint locally (optimistic insert).
func (c *Complaints) Add(complaint models.Complaint) {
	c.mu.Lock()
	c.state.Items = append([]models.Complaint{complaint}, c.state.Items...)
	c.mu.Unlock()
	c.notify()
}

// Update replaces the matching list entry and CurrentComplaint.
func (c *Complaints) Update(complaint models.Complaint) {
	c.mu.Lock()
	c.replaceLocked(complaint)
	c.mu.Unlock()
	c.notify()
}

// Remove drops the matching entry; CurrentComplaint is cleared when it
// was the removed one.
func (c *Complaints) Remove(id string) {
	c.mu.Lock()
	items := c.state.Items[:0]
	for _, item := range c.state.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	c.state.Items = items
	if c.state.CurrentComplaint != nil && c.state.CurrentComplaint.ID == id {
		c.state.CurrentComplaint = nil
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Complaints) ClearError() {
	c.mu.Lock()
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *Complaints) replaceLocked(complaint models.Complaint) {
	for i := range c.state.Items {
		if c.state.Items[i].ID == complaint.ID {
			c.state.Items[i] = complaint
			break
		}
	}
	if c.state.CurrentComplaint != nil && c.state.CurrentComplaint.ID == complaint.ID {
		cur := complaint
		c.state.CurrentComplaint = &cur
	}
}
