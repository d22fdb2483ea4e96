// Package client contains client-side bootstrap for caseadmin.
//
// InitDatabase opens the SQLite file holding the persisted session and UI
// preferences, creating its directory when missing, and applies the
// embedded goose migrations. Failures wrap ErrDatabase.
package client
