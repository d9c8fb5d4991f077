// Package page provides the driven.ElementSource that reads searchable
// elements out of a rendered HTML page.
//
// A page is either a local file or an http(s) URL. Selectors are resolved
// with goquery; inside a target, rows ("tr"), cards (".card") and list items
// (".list-item") are the searchable elements. HTTP fetches go through a
// rate limiter and, when a token is configured, an oauth2 bearer client.
// File pages can be watched for changes.
package page
