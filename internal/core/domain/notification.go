package domain

import "time"

// Notification defaults.
const (
	// DefaultNotificationDuration is how long a notification stays before fading.
	DefaultNotificationDuration = 5 * time.Second

	// DefaultNotificationFade is the fade-out window after the duration elapses.
	DefaultNotificationFade = 300 * time.Millisecond
)

// NotificationType categorises a notification.
type NotificationType string

// Notification types.
const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
	NotificationDanger  NotificationType = "danger"
)

// IsValid returns true if the notification type is recognised.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationSuccess, NotificationError, NotificationWarning, NotificationInfo, NotificationDanger:
		return true
	default:
		return false
	}
}

// Icon returns the icon name shown next to a notification of this type.
// Unknown types fall back to the info icon.
func (t NotificationType) Icon() string {
	switch t {
	case NotificationSuccess:
		return "check-circle"
	case NotificationError, NotificationWarning, NotificationDanger:
		return "exclamation-triangle"
	default:
		return "info-circle"
	}
}

// String returns the string representation.
func (t NotificationType) String() string {
	return string(t)
}

// Notification is a transient toast message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	Duration  time.Duration
	Fade      time.Duration
	CreatedAt time.Time
}

// FadesAt returns when the notification starts fading out.
func (n Notification) FadesAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}

// ExpiresAt returns when the notification is removed.
func (n Notification) ExpiresAt() time.Time {
	return n.FadesAt().Add(n.Fade)
}

// Fading reports whether the notification is in its fade-out window at now.
func (n Notification) Fading(now time.Time) bool {
	return !now.Before(n.FadesAt()) && now.Before(n.ExpiresAt())
}

// Expired reports whether the notification should be removed at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt())
}
