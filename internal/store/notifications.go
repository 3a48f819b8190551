// internal/store/notifications.go

package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"gira-client/internal/api"
	"gira-client/internal/models"
)

// NotificationsState invariant: UnreadCount always equals the number
// of items with IsLue == false. Every mutator adjusts the counter by
// exactly the delta implied by the read-flag transition it performs,
// clamped at zero; it is recomputed only on FetchAll when the payload
// did not carry a server count.
type NotificationsState struct {
	Items       []models.Notification
	UnreadCount int
	IsLoading   bool
	Error       string
}

type Notifications struct {
	subscriberHub

	mu     sync.RWMutex
	state  NotificationsState
	client *api.Client
	log    *logrus.Logger
}

func NewNotifications(client *api.Client, log *logrus.Logger) *Notifications {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Notifications{client: client, log: log}
}

func (n *Notifications) Snapshot() NotificationsState {
	n.mu.RLock()
	defer n.mu.RUnlock()

	snap := n.state
	snap.Items = append([]models.Notification(nil), n.state.Items...)
	return snap
}

func (n *Notifications) begin() {
	n.mu.Lock()
	n.state.IsLoading = true
	n.state.Error = ""
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) fail(err error) {
	n.mu.Lock()
	n.state.IsLoading = false
	n.state.Error = api.ErrorMessage(err)
	n.mu.Unlock()
	n.notify()
}

// FetchAll replaces the collection. The unread counter comes from the
// payload when the server provided one, otherwise from a recount.
func (n *Notifications) FetchAll(ctx context.Context) error {
	n.begin()

	page, err := n.client.Notifications(ctx)
	if err != nil {
		n.fail(err)
		return err
	}

	n.mu.Lock()
	n.state.IsLoading = false
	n.state.Items = page.Notifications
	if page.UnreadCount != nil {
		n.state.UnreadCount = *page.UnreadCount
	} else {
		count := 0
		for _, item := range page.Notifications {
			if !item.IsLue {
				count++
			}
		}
		n.state.UnreadCount = count
	}
	n.state.Error = ""
	n.mu.Unlock()
	n.notify()
	return nil
}

// MarkRead confirms the flip server-side, then applies the same
// single-decrement transition as MarkReadLocal.
func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	n.begin()

	if err := n.client.MarkNotificationRead(ctx, id); err != nil {
		n.fail(err)
		return err
	}

	n.mu.Lock()
	n.state.IsLoading = false
	n.markReadLocked(id)
	n.state.Error = ""
	n.mu.Unlock()
	n.notify()
	return nil
}

func (n *Notifications) MarkAllRead(ctx context.Context) error {
	n.begin()

	if err := n.client.MarkAllNotificationsRead(ctx); err != nil {
		n.fail(err)
		return err
	}

	n.mu.Lock()
	n.state.IsLoading = false
	n.markAllReadLocked()
	n.state.Error = ""
	n.mu.Unlock()
	n.notify()
	return nil
}

func (n *Notifications) Remove(ctx context.Context, id string) error {
	n.begin()

	if err := n.client.DeleteNotification(ctx, id); err != nil {
		n.fail(err)
		return err
	}

	n.mu.Lock()
	n.state.IsLoading = false
	n.removeLocked(id)
	n.state.Error = ""
	n.mu.Unlock()
	n.notify()
	return nil
}

// --- local mutators (used for real-time pushes and tests) ---

// Add prepends a notification; the counter moves only when the new
// item is unread.
func (n *Notifications) Add(notification models.Notification) {
	n.mu.Lock()
	n.state.Items = append([]models.Notification{notification}, n.state.Items...)
	if !notification.IsLue {
		n.state.UnreadCount++
	}
	n.mu.Unlock()
	n.notify()
}

// Update replaces the matching item. The counter takes the signed
// delta of the old read flag against the new one.
func (n *Notifications) Update(notification models.Notification) {
	n.mu.Lock()
	for i := range n.state.Items {
		if n.state.Items[i].ID == notification.ID {
			wasRead := n.state.Items[i].IsLue
			n.state.Items[i] = notification
			if !wasRead && notification.IsLue {
				n.decrementLocked()
			} else if wasRead && !notification.IsLue {
				n.state.UnreadCount++
			}
			break
		}
	}
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) MarkReadLocal(id string) {
	n.mu.Lock()
	n.markReadLocked(id)
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) MarkAllReadLocal() {
	n.mu.Lock()
	n.markAllReadLocked()
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) SetUnreadCount(count int) {
	n.mu.Lock()
	if count < 0 {
		count = 0
	}
	n.state.UnreadCount = count
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) RemoveLocal(id string) {
	n.mu.Lock()
	n.removeLocked(id)
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) Clear() {
	n.mu.Lock()
	n.state.Items = nil
	n.state.UnreadCount = 0
	n.mu.Unlock()
	n.notify()
}

func (n *Notifications) ClearError() {
	n.mu.Lock()
	n.state.Error = ""
	n.mu.Unlock()
	n.notify()
}

// markReadLocked decrements at most once: an already-read item is a
// no-op, which is what keeps a double MarkRead from going negative.
func (n *Notifications) markReadLocked(id string) {
	for i := range n.state.Items {
		if n.state.Items[i].ID == id {
			if !n.state.Items[i].IsLue {
				n.state.Items[i].IsLue = true
				n.decrementLocked()
			}
			return
		}
	}
}

func (n *Notifications) markAllReadLocked() {
	for i := range n.state.Items {
		n.state.Items[i].IsLue = true
	}
	n.state.UnreadCount = 0
}

func (n *Notifications) removeLocked(id string) {
	for i := range n.state.Items {
		if n.state.Items[i].ID == id {
			if !n.state.Items[i].IsLue {
				n.decrementLocked()
			}
			n.state.Items = append(n.state.Items[:i], n.state.Items[i+1:]...)
			return
		}
	}
}

func (n *Notifications) decrementLocked() {
	if n.state.UnreadCount > 0 {
		n.state.UnreadCount--
	}
}
