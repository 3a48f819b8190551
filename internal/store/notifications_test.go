package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gira-client/internal/models"
	"gira-client/internal/stubapi"
)

func recount(snap NotificationsState) int {
	count := 0
	for _, item := range snap.Items {
		if !item.IsLue {
			count++
		}
	}
	return count
}

// checkInvariant asserts the core property: the incrementally
// maintained counter equals a full recount after every mutation.
func checkInvariant(t *testing.T, n *Notifications, step string) {
	t.Helper()
	snap := n.Snapshot()
	assert.Equalf(t, recount(snap), snap.UnreadCount, "after %s", step)
	assert.GreaterOrEqualf(t, snap.UnreadCount, 0, "after %s", step)
}

func notif(id string, read bool) models.Notification {
	return models.Notification{
		ID:           id,
		Titre:        "Notification " + id,
		Message:      "message " + id,
		Type:         models.NotificationTypeComment,
		IsLue:        read,
		DateCreation: time.Now(),
	}
}

func TestUnreadCountMatchesRecountAcrossMutations(t *testing.T) {
	env := newTestEnv(t)
	n := NewNotifications(env.client, quietLogger())

	steps := []struct {
		name string
		run  func()
	}{
		{"add unread n1", func() { n.Add(notif("n1", false)) }},
		{"add read n2", func() { n.Add(notif("n2", true)) }},
		{"add unread n3", func() { n.Add(notif("n3", false)) }},
		{"mark n1 read", func() { n.MarkReadLocal("n1") }},
		{"mark n1 read again", func() { n.MarkReadLocal("n1") }},
		{"update n2 to unread", func() { n.Update(notif("n2", false)) }},
		{"update n2 to read", func() { n.Update(notif("n2", true)) }},
		{"update unknown id", func() { n.Update(notif("zzz", false)) }},
		{"remove unread n3", func() { n.RemoveLocal("n3") }},
		{"remove read n1", func() { n.RemoveLocal("n1") }},
		{"remove unknown", func() { n.RemoveLocal("zzz") }},
		{"add unread n4", func() { n.Add(notif("n4", false)) }},
		{"mark all read", func() { n.MarkAllReadLocal() }},
		{"mark all read again", func() { n.MarkAllReadLocal() }},
		{"clear", func() { n.Clear() }},
	}

	for _, step := range steps {
		step.run()
		checkInvariant(t, n, step.name)
	}
}

func TestMarkReadTwiceDecrementsOnce(t *testing.T) {
	env := newTestEnv(t)
	n := NewNotifications(env.client, quietLogger())

	n.Add(notif("n1", false))
	require.Equal(t, 1, n.Snapshot().UnreadCount)

	n.MarkReadLocal("n1")
	assert.Equal(t, 0, n.Snapshot().UnreadCount)

	n.MarkReadLocal("n1")
	assert.Equal(t, 0, n.Snapshot().UnreadCount)
}

func TestSetUnreadCountClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	n := NewNotifications(env.client, quietLogger())

	n.SetUnreadCount(-5)
	assert.Equal(t, 0, n.Snapshot().UnreadCount)

	n.SetUnreadCount(3)
	assert.Equal(t, 3, n.Snapshot().UnreadCount)
}

func TestAddAdjustsOnlyForUnread(t *testing.T) {
	env := newTestEnv(t)
	n := NewNotifications(env.client, quietLogger())

	n.Add(notif("read", true))
	assert.Equal(t, 0, n.Snapshot().UnreadCount)

	n.Add(notif("unread", false))
	assert.Equal(t, 1, n.Snapshot().UnreadCount)

	// Newest first.
	snap := n.Snapshot()
	assert.Equal(t, "unread", snap.Items[0].ID)
}

func newNotificationsEnv(t *testing.T) *Notifications {
	t.Helper()
	env := newTestEnv(t)
	session := NewSession(env.client, env.tokens, quietLogger())
	loginAs(t, session, stubapi.SeedPassagerEmail)
	return NewNotifications(env.client, quietLogger())
}

func TestFetchAllTakesServerCount(t *testing.T) {
	n := newNotificationsEnv(t)
	ctx := context.Background()

	require.NoError(t, n.FetchAll(ctx))

	snap := n.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 1, snap.UnreadCount)
	checkInvariant(t, n, "fetchAll")
}

func TestMarkReadAgainstServer(t *testing.T) {
	n := newNotificationsEnv(t)
	ctx := context.Background()

	require.NoError(t, n.FetchAll(ctx))
	var unreadID string
	for _, item := range n.Snapshot().Items {
		if !item.IsLue {
			unreadID = item.ID
			break
		}
	}
	require.NotEmpty(t, unreadID)

	require.NoError(t, n.MarkRead(ctx, unreadID))
	assert.Equal(t, 0, n.Snapshot().UnreadCount)
	checkInvariant(t, n, "markRead")

	// Second confirmation of the same id stays at zero.
	require.NoError(t, n.MarkRead(ctx, unreadID))
	assert.Equal(t, 0, n.Snapshot().UnreadCount)
	checkInvariant(t, n, "markRead twice")
}

func TestMarkAllReadAgainstServer(t *testing.T) {
	n := newNotificationsEnv(t)
	ctx := context.Background()

	require.NoError(t, n.FetchAll(ctx))
	require.NoError(t, n.MarkAllRead(ctx))

	snap := n.Snapshot()
	assert.Equal(t, 0, snap.UnreadCount)
	for _, item := range snap.Items {
		assert.True(t, item.IsLue)
	}

	// A refetch agrees with the local view.
	require.NoError(t, n.FetchAll(ctx))
	assert.Equal(t, 0, n.Snapshot().UnreadCount)
}

func TestRemoveAgainstServer(t *testing.T) {
	n := newNotificationsEnv(t)
	ctx := context.Background()

	require.NoError(t, n.FetchAll(ctx))
	snap := n.Snapshot()
	require.Len(t, snap.Items, 2)

	var unreadID string
	for _, item := range snap.Items {
		if !item.IsLue {
			unreadID = item.ID
		}
	}
	require.NotEmpty(t, unreadID)

	require.NoError(t, n.Remove(ctx, unreadID))
	snap = n.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 0, snap.UnreadCount)
	checkInvariant(t, n, "remove")
}

func TestRemoveUnknownIDSurfacesServerMessage(t *testing.T) {
	n := newNotificationsEnv(t)

	err := n.Remove(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Notification not found", n.Snapshot().Error)
}

func TestInvariantHoldsUnderManyRandomishMutations(t *testing.T) {
	env := newTestEnv(t)
	n := NewNotifications(env.client, quietLogger())

	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("n%d", i%7)
		switch i % 5 {
		case 0:
			n.Add(notif(id, i%2 == 0))
		case 1:
			n.MarkReadLocal(id)
		case 2:
			n.Update(notif(id, i%3 == 0))
		case 3:
			n.RemoveLocal(id)
		case 4:
			n.MarkAllReadLocal()
		}
		checkInvariant(t, n, fmt.Sprintf("iteration %d", i))
	}
}
