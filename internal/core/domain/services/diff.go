package services

import (
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/trip"
)

// DiffPackageLines compares the package lines of the persisted revision of a
// trip with the lines about to be saved, by line id.
//
// A nil previous means the trip is new: every current line is added and none
// is removed. Lines present in both revisions appear in neither result.
func DiffPackageLines(previous *trip.Trip, current []*trip.PackageLine) (added, removed []*trip.PackageLine) {
	if previous == nil {
		return append([]*trip.PackageLine(nil), current...), nil
	}

	before := previous.Packages()
	beforeIDs := make(map[kernel.UUID]struct{}, len(before))
	for _, l := range before {
		beforeIDs[l.ID()] = struct{}{}
	}
	currentIDs := make(map[kernel.UUID]struct{}, len(current))
	for _, l := range current {
		currentIDs[l.ID()] = struct{}{}
	}

	for _, l := range current {
		if _, ok := beforeIDs[l.ID()]; !ok {
			added = append(added, l)
		}
	}
	for _, l := range before {
		if _, ok := currentIDs[l.ID()]; !ok {
			removed = append(removed, l)
		}
	}
	return added, removed
}
