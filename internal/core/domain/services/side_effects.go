package services

import (
	"context"
	"fmt"
	"strings"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
)

// MutationKind is the kind of change made to a ledger entry.
type MutationKind int

const (
	MutationAppend MutationKind = iota + 1
	MutationUpdate
	MutationRemove
)

func (k MutationKind) String() string {
	switch k {
	case MutationAppend:
		return "append"
	case MutationUpdate:
		return "update"
	case MutationRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// LedgerMutation records one change made to a parcel's ledger.
type LedgerMutation struct {
	Kind    MutationKind
	EventID kernel.UUID
	Stage   lifecycle.Stage
}

// PackageChange is a parcel whose in-memory ledger was changed, with the
// changes in the order they were made.
type PackageChange struct {
	Parcel    *parcel.Parcel
	Mutations []LedgerMutation
}

func (c *PackageChange) record(kind MutationKind, eventID kernel.UUID, stage lifecycle.Stage) {
	c.Mutations = append(c.Mutations, LedgerMutation{Kind: kind, EventID: eventID, Stage: stage})
}

// SideEffects is the batch of parcel changes planned by one trip save or
// delete. Nothing is persisted until Apply is called.
type SideEffects struct {
	Changes []*PackageChange
}

// IsEmpty reports whether there is nothing to persist.
func (s SideEffects) IsEmpty() bool {
	return len(s.Changes) == 0
}

// PackageIDs returns the ids of the changed parcels in apply order.
func (s SideEffects) PackageIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.Changes))
	for _, c := range s.Changes {
		ids = append(ids, c.Parcel.ID())
	}
	return ids
}

// Change returns the change planned for packageID, or nil.
func (s SideEffects) Change(packageID kernel.UUID) *PackageChange {
	for _, c := range s.Changes {
		if c.Parcel.ID().IsEqual(packageID) {
			return c
		}
	}
	return nil
}

// ApplyError reports a batch that was only partly persisted. Parcels in
// Applied were saved before Failed could not be.
type ApplyError struct {
	Applied []kernel.UUID
	Failed  kernel.UUID
	Cause   error
}

func (e *ApplyError) Error() string {
	applied := make([]string, 0, len(e.Applied))
	for _, id := range e.Applied {
		applied = append(applied, id.String())
	}
	return fmt.Sprintf("apply side effects: package %s failed after [%s]: %v",
		e.Failed, strings.Join(applied, ", "), e.Cause)
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}

// Apply persists every changed parcel in order. It stops at the first
// failure and returns an ApplyError. Without a surrounding transaction the
// parcels saved before the failure stay saved.
func Apply(ctx context.Context, effects SideEffects, writer PackageWriter) error {
	applied := make([]kernel.UUID, 0, len(effects.Changes))
	for _, c := range effects.Changes {
		if err := writer.Update(ctx, c.Parcel); err != nil {
			return &ApplyError{Applied: applied, Failed: c.Parcel.ID(), Cause: err}
		}
		applied = append(applied, c.Parcel.ID())
	}
	return nil
}

// planner loads each parcel at most once and collects its changes.
type planner struct {
	reader  PackageReader
	changes map[kernel.UUID]*PackageChange
	order   []kernel.UUID
}

func newPlanner(reader PackageReader) *planner {
	return &planner{reader: reader, changes: make(map[kernel.UUID]*PackageChange)}
}

func (p *planner) ledger(ctx context.Context, packageID kernel.UUID) (recordingLedger, error) {
	change, ok := p.changes[packageID]
	if !ok {
		loaded, err := p.reader.Get(ctx, packageID)
		if err != nil {
			return recordingLedger{}, err
		}
		change = &PackageChange{Parcel: loaded}
		p.changes[packageID] = change
		p.order = append(p.order, packageID)
	}
	return recordingLedger{EventLedger: change.Parcel, change: change}, nil
}

// effects returns the parcels that were actually changed, in load order.
func (p *planner) effects() SideEffects {
	var out SideEffects
	for _, id := range p.order {
		if c := p.changes[id]; len(c.Mutations) > 0 {
			out.Changes = append(out.Changes, c)
		}
	}
	return out
}
