// Package cli provides the interactive case-management console.
//
// It wires the session, the store and the per-entity actions into a REPL.
// Typical flow: restore or prompt for a session, then run list/show/add/
// edit/delete/restore commands against any entity kind, or manage the
// reference tables through "ref".
//
// Each command runs under its own child context and the store's alert is
// printed after it finishes. Mutating commands are gated by the signed-in
// user's permissions.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
