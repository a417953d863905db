// Package kernel provides the value objects shared by every aggregate of the
// transportation domain.
//
// The package includes:
//   - UUID: identifier of trips, packages, trip lines and package events
//   - Destination: a trimmed place label used for origins, destinations and stops
//
// Both types are immutable, comparable and usable as map keys.
package kernel
