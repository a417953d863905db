// Package trip contains the TransportationTrip aggregate.
//
// A trip carries an ordered list of package lines through an ordered list of
// stops. Lines keep a stable id across saves while the trip is edited; that id
// is what the diff between two revisions of a trip compares. Stops are
// derived from line destinations but can be edited independently.
package trip
