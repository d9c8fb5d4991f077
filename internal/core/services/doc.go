// Package services implements the driving port interfaces.
// Services hold the page behaviour (ranking, filtering, UI state,
// notifications, form autosave, shortcuts and settings) and reach
// storage and page content only through driven ports.
package services
