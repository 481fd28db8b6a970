// Package cache implements the staleness-aware hierarchical summary cache:
// user and repo summaries are persisted as sidecar files (user.data,
// repo.data) next to the directories they describe, and every read goes
// through the Accessor's load-or-build-or-repair protocol. A missing sidecar
// is built synchronously, a corrupt one is rebuilt in place (self-healing),
// and a stale one is served immediately while a background task refreshes it.
// Writes are whole-file atomic replaces, so concurrent readers see either the
// old or the new bytes and no failure from this package ever reaches a
// caller.
package cache
