// Package history persists reconciliation run records.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration, plus an
// in-memory SQLite driver for tests and single-binary use.
//
// # Store
//
// Every apply or delete pass is recorded as a Run row: which queue, which
// variant, whether anything changed, whether it was a dry run, and the outcome
// message on failure. The store is strictly append-and-read; reconciliation
// itself never depends on history, so a missing database only disables the
// audit trail.
//
// # Usage
//
//	db, err := history.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", err)
//	}
//	store := history.NewStore(db)
package history
