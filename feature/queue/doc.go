// Package queue exposes single-queue reconciliation as an application feature.
//
// The service wraps the core reconcile engine with run-history recording and
// is shared by the CLI commands and the HTTP handler. The handler provides
// the management API:
//
//   - POST   /queues               apply a desired spec (dry_run query param)
//   - GET    /queues/:name          observe current remote attributes
//   - GET    /queues/:name/history  recent reconciliation runs
//   - DELETE /queues/:name          delete the queue (type, dry_run params)
package queue
