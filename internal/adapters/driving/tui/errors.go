package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingUIStateService is returned when the UI state service is not provided.
var ErrMissingUIStateService = errors.New("tui: ui state service is required")

// ErrMissingNotificationService is returned when the notification service is not provided.
var ErrMissingNotificationService = errors.New("tui: notification service is required")
