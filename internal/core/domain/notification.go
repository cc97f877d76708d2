package domain

// NotificationType tague la cause d'une notification.
type NotificationType string

const (
	NotificationFollower NotificationType = "follower"
	NotificationReaction NotificationType = "reaction"
	NotificationGroup    NotificationType = "group"
)

// Notification est la requête sortante vers le service de notifications.
// Fire-and-forget : ce coeur ne dépend jamais de son issue.
type Notification struct {
	Content     string
	Type        NotificationType
	RecipientID string
	SenderID    string
}
