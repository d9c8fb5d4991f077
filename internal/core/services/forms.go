package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ims-cli/internal/debounce"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// Ensure FormService implements the interface.
var _ driving.FormService = (*FormService)(nil)

// formIDLength is the number of random characters in a generated form ID.
const formIDLength = 9

// FormService validates forms and keeps autosaved drafts of their values.
type FormService struct {
	mu       sync.Mutex
	store    driven.KVStore
	notifier driving.NotificationService
	delay    time.Duration
	drafts   map[string]*debounce.Debouncer[map[string]string]
}

// NewFormService creates a form service. The notifier is optional.
func NewFormService(
	store driven.KVStore,
	notifier driving.NotificationService,
	settings domain.AutosaveSettings,
) *FormService {
	return &FormService{
		store:    store,
		notifier: notifier,
		delay:    settings.Debounce,
		drafts:   make(map[string]*debounce.Debouncer[map[string]string]),
	}
}

// Prepare assigns an ID to a form that has none and restores its draft.
// A corrupt draft is logged and skipped.
func (s *FormService) Prepare(form *domain.Form) error {
	if form == nil {
		return fmt.Errorf("prepare form: %w", domain.ErrInvalidInput)
	}
	if form.ID == "" {
		form.ID = newFormID()
	}
	if !form.Autosave || s.store == nil {
		return nil
	}

	raw, ok, err := s.store.Get(domain.AutosaveKey(form.ID))
	if err != nil {
		return fmt.Errorf("read draft %s: %w", form.ID, err)
	}
	if !ok {
		return nil
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		logger.Warn("Failed to restore form data: %v", fmt.Errorf("%w: %v", domain.ErrCorruptState, err))
		return nil
	}
	applied := form.Apply(values)
	logger.Debug("Restored %d fields of %s", applied, form.ID)
	return nil
}

// Submit validates the form. An invalid form raises an error notification
// and is rejected. A valid form drops its pending and stored draft, waiting
// for a save in progress so it cannot write the draft back.
func (s *FormService) Submit(form *domain.Form) (bool, error) {
	if form == nil {
		return false, fmt.Errorf("submit form: %w", domain.ErrInvalidInput)
	}

	if invalid := form.Validate(); len(invalid) > 0 {
		logger.Debug("Form %s rejected, invalid fields: %s", form.ID, strings.Join(invalid, ", "))
		if s.notifier != nil {
			s.notifier.Notify(domain.RequiredFieldsMessage, domain.NotificationError, 0)
		}
		return false, nil
	}

	if !form.Autosave {
		return true, nil
	}

	s.mu.Lock()
	d := s.drafts[form.ID]
	s.mu.Unlock()
	if d != nil {
		// A save already writing must finish before the key is removed.
		d.Cancel()
		d.Wait()
	}

	if s.store != nil {
		if err := s.store.Remove(domain.AutosaveKey(form.ID)); err != nil {
			return true, fmt.Errorf("remove draft %s: %w", form.ID, err)
		}
	}
	return true, nil
}

// Changed schedules a debounced save of the form's current values.
func (s *FormService) Changed(form *domain.Form) {
	if form == nil || !form.Autosave || form.ID == "" || s.store == nil {
		return
	}

	s.mu.Lock()
	d, ok := s.drafts[form.ID]
	if !ok {
		key := domain.AutosaveKey(form.ID)
		d = debounce.New(s.delay, func(values map[string]string) {
			s.save(key, values)
		})
		s.drafts[form.ID] = d
	}
	s.mu.Unlock()

	d.Trigger(form.Values())
}

// Flush writes every pending draft now.
func (s *FormService) Flush() {
	for _, d := range s.debouncers() {
		d.Flush()
	}
}

// Close drops pending drafts and stops autosaving.
func (s *FormService) Close() {
	for _, d := range s.debouncers() {
		d.Stop()
	}
}

func (s *FormService) debouncers() []*debounce.Debouncer[map[string]string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*debounce.Debouncer[map[string]string], 0, len(s.drafts))
	for _, d := range s.drafts {
		list = append(list, d)
	}
	return list
}

func (s *FormService) save(key string, values map[string]string) {
	data, err := json.Marshal(values)
	if err != nil {
		logger.Warn("Failed to encode form data: %v", err)
		return
	}
	if err := s.store.Set(key, string(data)); err != nil {
		logger.Warn("Failed to save form data: %v", err)
		return
	}
	logger.Debug("Saved draft %s", key)
}

// newFormID returns "form_" followed by random lowercase alphanumerics.
func newFormID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "form_" + id[:formIDLength]
}
