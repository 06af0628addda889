// Package history keeps a SQLite journal of completed detect and route runs.
//
// Each row stores the run kind, model, result source, counts for quick
// listing, the schema version of the stored result, and the full result as
// JSON so `aiint history show` can reprint it exactly. The database uses WAL
// mode with a busy timeout so concurrent CLI invocations queue instead of
// failing.
package history
