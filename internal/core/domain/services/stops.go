package services

import (
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/trip"
)

// ReconcileStops appends a stop for every package destination the trip does
// not stop at yet, in first-seen order, and returns the appended stops.
// Existing stops are never removed or reordered.
func ReconcileStops(t *trip.Trip) []*trip.StopLine {
	missing, _ := stopMismatches(t.Packages(), t.Stops())

	appended := make([]*trip.StopLine, 0, len(missing))
	for _, d := range missing {
		appended = append(appended, t.AppendStop(d))
	}
	return appended
}

// stopMismatches returns the destinations without a stop and the stops
// without a package, each in list order. Blank labels are ignored.
func stopMismatches(lines []*trip.PackageLine, stops []*trip.StopLine) (missing, extra []kernel.Destination) {
	destinations := make(map[kernel.Destination]struct{}, len(lines))
	var ordered []kernel.Destination
	for _, l := range lines {
		d := l.Destination()
		if d.IsEmpty() {
			continue
		}
		if _, ok := destinations[d]; ok {
			continue
		}
		destinations[d] = struct{}{}
		ordered = append(ordered, d)
	}

	stopSet := make(map[kernel.Destination]struct{}, len(stops))
	for _, s := range stops {
		d := s.Stop()
		if d.IsEmpty() {
			continue
		}
		if _, ok := stopSet[d]; ok {
			continue
		}
		stopSet[d] = struct{}{}
		if _, ok := destinations[d]; !ok {
			extra = append(extra, d)
		}
	}

	for _, d := range ordered {
		if _, ok := stopSet[d]; !ok {
			missing = append(missing, d)
		}
	}
	return missing, extra
}

func labels(ds []kernel.Destination) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}
