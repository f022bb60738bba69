// Package sqlite contains the SQLite repository for evaluation results.
//
// Runs, per-simulation skill scores and bootstrap summaries are stored
// here so that analysis code stays free of SQL. The schema is owned by the
// migrations in internal/db.
package sqlite
