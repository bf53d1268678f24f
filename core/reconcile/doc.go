// Package reconcile implements the queue reconciliation engine.
//
// It compares a declared desired queue state against the live state of an
// SQS queue and applies the minimal set of attribute updates needed to make
// the two match. The engine is split into three layers:
//
//   - Comparator: pure, type-aware equality between a desired value and the
//     raw string representation the remote API returns (see compare.go).
//   - Synchronizer: walks the fixed managed-attribute catalog, reads each
//     remote value, and issues one write per differing attribute (sync.go).
//   - Engine: resolves queue existence, creates or deletes the queue, and
//     assembles the final observed report (engine.go).
//
// Every entry point supports dry-run: differences are computed and reported
// but no mutating remote call is ever issued. Invocations are idempotent and
// safe to re-run; a second pass over converged state reports Changed=false.
package reconcile
