// Package cli provides the interactive newsdesk command-line client.
//
// It wires configuration, the local state store, the fallback HTTP client,
// and an interactive REPL for browsing and editing news items. The client
// keeps working when the backend is down: list commands fall back to the
// last good snapshot, edits are kept locally, and deletes are remembered so
// a lagging server copy cannot resurrect an item.
//
// Key features:
//   - Login / Logout (token paste, stored in a local file)
//   - Browse: list <category>, approved, pending, show <id>
//   - Edit: edit, feature, unfeature, delete, create
//   - refresh to re-pull both personal lists
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
