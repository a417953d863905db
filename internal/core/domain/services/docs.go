// Package services provides the domain services behind a transportation trip
// save and delete. They work across the trip aggregate and the parcels it
// carries, which is why they do not belong to either aggregate.
//
// The package includes:
//   - DiffPackageLines: added and removed package lines between two revisions
//   - ReconcileStops: stops implied by package destinations
//   - TripValidator: the ordered checks run before a trip is persisted
//   - EventSynchronizer: plans the parcel ledger changes caused by a save
//   - DeletionGuard: blocks or plans the cleanup of a trip deletion
//
// Services never persist anything. Ledger changes are planned as SideEffects
// and written by Apply through an injected PackageWriter, so callers decide
// when (and inside which transaction) parcels are saved.
package services
