// Package drift detects configuration drift across a fleet of queues.
//
// Desired specs live as JSON documents in the object store (one per queue,
// under a configurable prefix). The drift check loads every document, runs a
// dry-run reconciliation against the live queue, and reports which queues
// drifted from their declared state, which are missing entirely, and which
// could not be checked.
//
// The feature also exposes CRUD for the spec documents themselves, so the
// store can be managed through the same API:
//
//   - GET    /drift                run the fleet drift check
//   - GET    /drift/specs          list stored spec names
//   - GET    /drift/specs/:name    fetch one spec document
//   - PUT    /drift/specs/:name    create or replace a spec document
//   - DELETE /drift/specs/:name    remove a spec document
package drift
