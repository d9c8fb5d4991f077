package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// Ensure NotificationService implements the interface.
var _ driving.NotificationService = (*NotificationService)(nil)

// NotificationService keeps the list of toast notifications.
type NotificationService struct {
	mu       sync.Mutex
	items    []domain.Notification
	duration time.Duration
	fade     time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
}

// NewNotificationService creates a notification service from settings.
// A non-positive rate disables flood limiting.
func NewNotificationService(settings domain.NotificationSettings) *NotificationService {
	s := &NotificationService{
		duration: settings.Duration,
		fade:     settings.Fade,
		now:      time.Now,
	}
	if s.duration <= 0 {
		s.duration = domain.DefaultNotificationDuration
	}
	if s.fade < 0 {
		s.fade = domain.DefaultNotificationFade
	}
	if settings.RatePerSecond > 0 {
		burst := int(settings.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(settings.RatePerSecond), burst)
	}
	return s
}

// SetClock replaces the time source.
func (s *NotificationService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Notify adds a notification. A non-positive duration uses the configured
// default and an unknown type is shown as info. It returns false when the
// notification was dropped by the flood limiter.
func (s *NotificationService) Notify(
	message string, typ domain.NotificationType, duration time.Duration,
) (domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.limiter != nil && !s.limiter.AllowN(now, 1) {
		logger.Debug("Notification dropped: %q", message)
		return domain.Notification{}, false
	}
	if duration <= 0 {
		duration = s.duration
	}
	if !typ.IsValid() {
		typ = domain.NotificationInfo
	}

	n := domain.Notification{
		ID:        uuid.New().String(),
		Type:      typ,
		Message:   message,
		Duration:  duration,
		Fade:      s.fade,
		CreatedAt: now,
	}
	s.items = append(s.items, n)
	return n, true
}

// Active prunes expired notifications and returns the rest, newest first.
func (s *NotificationService) Active(now time.Time) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, n := range s.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	s.items = kept

	active := make([]domain.Notification, len(kept))
	for i := range kept {
		active[i] = kept[len(kept)-1-i]
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active
}

// Dismiss removes a notification immediately.
func (s *NotificationService) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
