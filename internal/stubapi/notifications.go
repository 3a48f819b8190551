// internal/stubapi/notifications.go

package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gira-client/internal/models"
)

// listNotifications returns the raw {notifications, unreadCount}
// payload, no envelope.
func (s *Server) listNotifications(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	s.mu.RLock()
	items := make([]models.Notification, 0)
	unread := 0
	for _, notification := range s.notifications {
		if notification.Destinataire.ID != user.ID {
			continue
		}
		items = append(items, notification)
		if !notification.IsLue {
			unread++
		}
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unreadCount":   unread,
	})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	found := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsLue = true
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].Destinataire.ID == user.ID {
			s.notifications[i].IsLue = true
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (s *Server) deleteNotification(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	found := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// pushNotification stores the notification and broadcasts it to any
// connected feed of the recipient.
func (s *Server) pushNotification(notification models.Notification) {
	s.mu.Lock()
	s.notifications = append([]models.Notification{notification}, s.notifications...)
	s.mu.Unlock()

	s.hub.Broadcast(notification.Destinataire.ID, Event{
		Type: EventNotification,
		Data: notification,
	})
}
