// Package parcel holds the Package aggregate and its event ledger.
//
// The type is named Parcel to keep it apart from Go's package keyword. A
// parcel owns an ordered history of events. Some events are created by a
// transportation trip and carry that trip's id; the rest (manual deliveries,
// returns, transfers) have no trip reference and trips never touch them.
//
// The parcel state follows the ledger: after every ledger mutation, state
// becomes the stage of the most recent event, or "received" when the ledger
// is empty.
package parcel
