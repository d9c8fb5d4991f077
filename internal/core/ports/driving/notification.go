package driving

import (
	"time"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// NotificationService manages transient toast notifications.
type NotificationService interface {
	// Notify raises a notification. A non-positive duration uses the default.
	// Returns false when the notification was dropped by the flood limiter.
	Notify(message string, typ domain.NotificationType, duration time.Duration) (domain.Notification, bool)

	// Active returns the notifications not yet expired at now, newest first.
	Active(now time.Time) []domain.Notification

	// Dismiss removes a notification immediately.
	Dismiss(id string)
}
