package driving

import "github.com/custodia-labs/ims-cli/internal/core/domain"

// FormService implements validation and draft autosave for forms.
type FormService interface {
	// Prepare assigns a generated ID to forms without one and restores any
	// autosaved draft. A corrupt draft is logged and skipped.
	Prepare(form *domain.Form) error

	// Submit validates the form. When validation fails an error notification
	// is raised and false is returned. On success the draft is discarded.
	Submit(form *domain.Form) (bool, error)

	// Changed schedules a debounced draft save.
	Changed(form *domain.Form)

	// Flush writes any pending draft immediately.
	Flush()

	// Close cancels pending draft saves.
	Close()
}
