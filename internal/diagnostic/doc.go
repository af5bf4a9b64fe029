// Package diagnostic provides structured warnings collected while
// introspecting an FMU's signal exchange blocks.
//
// Key capabilities:
//   - Duplicate instance recordings
//   - Instance paths that collide after the underscore name transform
//   - Non-fatal oddities surfaced to the caller instead of aborting a run
package diagnostic
