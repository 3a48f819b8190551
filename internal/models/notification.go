package models

import "time"

type NotificationType string

const (
	NotificationTypeAssignment   NotificationType = "ASSIGNMENT"
	NotificationTypeStatusChange NotificationType = "STATUS_CHANGE"
	NotificationTypeComment      NotificationType = "COMMENT"
	NotificationTypeEscalation   NotificationType = "ESCALATION"
	NotificationTypeSLABreach    NotificationType = "SLA_BREACH"
	NotificationTypeResolution   NotificationType = "RESOLUTION"
)

type Notification struct {
	ID           string                 `json:"id"`
	Titre        string                 `json:"titre"`
	Message      string                 `json:"message"`
	Type         NotificationType       `json:"type"`
	Destinataire User                   `json:"destinataire"`
	IsLue        bool                   `json:"isLue"`
	DateCreation time.Time              `json:"dateCreation"`
	Lien         string                 `json:"lien,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// NotificationPage is the /notifications payload. UnreadCount may be
// absent when the backend returns a bare list.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   *int           `json:"unreadCount,omitempty"`
}
