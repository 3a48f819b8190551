package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gira-client/internal/models"
	"gira-client/internal/stubapi"
)

func newComplaintsEnv(t *testing.T) (*testEnv, *Complaints) {
	t.Helper()
	env := newTestEnv(t)
	session := NewSession(env.client, env.tokens, quietLogger())
	loginAs(t, session, stubapi.SeedPassagerEmail)
	return env, NewComplaints(env.client, quietLogger())
}

func TestFetchListReplacesItemsAndPagination(t *testing.T) {
	_, complaints := newComplaintsEnv(t)
	ctx := context.Background()

	require.NoError(t, complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{}))

	snap := complaints.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.Pagination.Total)
	assert.Equal(t, 0, snap.Pagination.Page)
	assert.False(t, snap.IsLoading)
	assert.Empty(t, snap.Error)
}

func TestFetchListForwardsFilters(t *testing.T) {
	_, complaints := newComplaintsEnv(t)
	ctx := context.Background()

	require.NoError(t, complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{
		Statut: []models.ComplaintStatus{models.StatutResolue},
	}))

	snap := complaints.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, models.StatutResolue, snap.Items[0].Statut)
}

func TestCreateThenFetchListKeepsSingleServerCopy(t *testing.T) {
	_, complaints := newComplaintsEnv(t)
	ctx := context.Background()

	require.NoError(t, complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{}))

	created, err := complaints.Create(ctx, models.ComplaintForm{
		Titre:       "Climatisation en panne au terminal 1",
		Description: "La salle d'embarquement B est irrespirable depuis ce matin.",
		CategorieID: "Services",
		Priorite:    models.PrioriteNormale,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.Numero)
	assert.Equal(t, models.StatutSoumise, created.Statut)

	// Optimistic prepend: the created entity is already at the front.
	snap := complaints.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, created.ID, snap.Items[0].ID)

	// FetchList wholesale-replaces: exactly one copy survives, the
	// server one.
	require.NoError(t, complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{}))
	snap = complaints.Snapshot()
	require.Len(t, snap.Items, 3)

	occurrences := 0
	for _, item := range snap.Items {
		if item.ID == created.ID {
			occurrences++
			assert.NotEmpty(t, item.Numero)
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestAddCommentSyncsListAndCurrent(t *testing.T) {
	_, complaints := newComplaintsEnv(t)
	ctx := context.Background()

	require.NoError(t, complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{}))
	id := complaints.Snapshot().Items[0].ID
	require.NoError(t, complaints.FetchByID(ctx, id))

	before := complaints.Snapshot()
	require.NotNil(t, before.CurrentComplaint)
	baseLen := len(before.CurrentComplaint.Commentaires)

	require.NoError(t, complaints.AddComment(ctx, id, models.CommentForm{
		Contenu: "Des nouvelles de la recherche ?",
	}))

	snap := complaints.Snapshot()
	var listEntry *models.Complaint
	for i := range snap.Items {
		if snap.Items[i].ID == id {
			listEntry = &snap.Items[i]
			break
		}
	}
	require.NotNil(t, listEntry)
	require.NotNil(t, snap.CurrentComplaint)

	assert.Len(t, listEntry.Commentaires, baseLen+1)
	assert.Len(t, snap.CurrentComplaint.Commentaires, baseLen+1)
	last := listEntry.Commentaires[len(listEntry.Commentaires)-1]
	lastCurrent := snap.CurrentComplaint.Commentaires[len(snap.CurrentComplaint.Commentaires)-1]
	assert.Equal(t, last.ID, lastCurrent.ID)
	assert.Equal(t, "Des nouvelles de la recherche ?", last.Contenu)
}

func TestUpdateStatusSyncsListAndCurrent(t *testing.T) {
	_, complaints := newComplaintsEnv(t)
	ctx := context.Background()

	require.NoError(t, complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{}))
	id := complaints.Snapshot().Items[0].ID
	require.NoError(t, complaints.FetchByID(ctx, id))

	require.NoError(t, complaints.UpdateStatus(ctx, id, models.StatutResolue))

	snap := complaints.Snapshot()
	for _, item := range snap.Items {
		if item.ID == id {
			assert.Equal(t, models.StatutResolue, item.Statut)
		}
	}
	require.NotNil(t, snap.CurrentComplaint)
	assert.Equal(t, models.StatutResolue, snap.CurrentComplaint.Statut)
}

func TestUpdateStatusUnknownIDSurfacesServerMessage(t *testing.T) {
	_, complaints := newComplaintsEnv(t)

	err := complaints.UpdateStatus(context.Background(), "missing", models.StatutFermee)
	require.Error(t, err)
	assert.Equal(t, "Complaint not found", complaints.Snapshot().Error)
}

func TestLocalMutatorsMatchByIdentity(t *testing.T) {
	env := newTestEnv(t)
	complaints := NewComplaints(env.client, quietLogger())

	a := models.Complaint{ID: "a", Titre: "A"}
	b := models.Complaint{ID: "b", Titre: "B"}
	complaints.Add(a)
	complaints.Add(b)
	complaints.SetCurrent(&a)

	// Unknown identity: silent no-op.
	complaints.Update(models.Complaint{ID: "zzz", Titre: "nope"})
	snap := complaints.Snapshot()
	assert.Equal(t, "B", snap.Items[0].Titre)
	assert.Equal(t, "A", snap.Items[1].Titre)

	complaints.Update(models.Complaint{ID: "a", Titre: "A2"})
	snap = complaints.Snapshot()
	assert.Equal(t, "A2", snap.Items[1].Titre)
	require.NotNil(t, snap.CurrentComplaint)
	assert.Equal(t, "A2", snap.CurrentComplaint.Titre)

	complaints.Remove("a")
	snap = complaints.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Nil(t, snap.CurrentComplaint)
}

func TestFiltersMergeAndClear(t *testing.T) {
	env := newTestEnv(t)
	complaints := NewComplaints(env.client, quietLogger())

	complaints.UpdateFilters(models.ComplaintFilters{Recherche: "bagage"})
	complaints.UpdateFilters(models.ComplaintFilters{
		Statut: []models.ComplaintStatus{models.StatutEnCours},
	})

	snap := complaints.Snapshot()
	assert.Equal(t, "bagage", snap.Filters.Recherche)
	assert.Equal(t, []models.ComplaintStatus{models.StatutEnCours}, snap.Filters.Statut)

	complaints.ClearFilters()
	assert.Equal(t, models.ComplaintFilters{}, complaints.Snapshot().Filters)
}

func TestUpdatePaginationPartial(t *testing.T) {
	env := newTestEnv(t)
	complaints := NewComplaints(env.client, quietLogger())

	page := 3
	complaints.UpdatePagination(PaginationPatch{Page: &page})

	snap := complaints.Snapshot()
	assert.Equal(t, 3, snap.Pagination.Page)
	assert.Equal(t, 10, snap.Pagination.Size)
}
