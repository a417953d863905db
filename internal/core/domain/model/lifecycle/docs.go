// Package lifecycle defines the states a transportation trip moves through,
// the stages recorded in package event histories, and the ranking tables used
// to compare them.
//
// The package includes:
//   - TripState: planned -> loaded -> transit -> completed
//   - Stage: a package state or package event type (planned, delivered, ...)
//   - Ranking: the immutable order and level tables, built once at start-up
//     and injected into the services that compare stages
//
// Key business rules:
//   - Only stages present in the order table are tracked lifecycle stages;
//     everything else (delivered, returned, ...) is out-of-band and must not
//     be rewritten by trip synchronization
//   - A stage missing from the level table ranks above every known stage
//   - A package may join a trip only while its state ranks at or below loaded
package lifecycle
