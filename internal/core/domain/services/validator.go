package services

import (
	"context"
	"fmt"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
)

// TripValidator runs the checks a trip must pass before it is saved:
//
//  1. every package line references a package, and no package repeats
//  2. every package line has a destination
//  3. no stop repeats
//  4. end events name a known stage outside the tracked lifecycle
//  5. packages added by this save have not gone past loaded
//  6. for planned and loaded trips, warn about destinations without a stop
//     and stops without a package
//
// Checks 1 to 5 are fatal and evaluated in that order; the first failure is
// returned and later checks do not run. Check 6 only produces warnings.
type TripValidator struct {
	ranking lifecycle.Ranking
}

// NewTripValidator creates a validator comparing package states with ranking.
func NewTripValidator(ranking lifecycle.Ranking) (*TripValidator, error) {
	if err := ranking.Validate(); err != nil {
		return nil, err
	}
	return &TripValidator{ranking: ranking}, nil
}

// Validate checks t against its persisted revision previous (nil for a new
// trip). added are the lines added since previous (see DiffPackageLines);
// their parcels are loaded through packages, except for packages previous
// already carried. Load failures are returned as errors.
func (v *TripValidator) Validate(
	ctx context.Context,
	previous *trip.Trip,
	t *trip.Trip,
	added []*trip.PackageLine,
	packages PackageReader,
) (Outcome, error) {
	if err := t.Validate(); err != nil {
		return Outcome{}, err
	}

	lines := t.Packages()
	if outcome := checkPackageReferences(lines); !outcome.OK() {
		return outcome, nil
	}
	if outcome := checkDestinations(lines); !outcome.OK() {
		return outcome, nil
	}
	if outcome := checkDuplicateStops(t.Stops()); !outcome.OK() {
		return outcome, nil
	}

	if outcome := v.checkEndEvents(lines); !outcome.OK() {
		return outcome, nil
	}

	outcome, err := v.checkEligibility(ctx, previous, added, packages)
	if err != nil || !outcome.OK() {
		return outcome, err
	}

	return Outcome{Warnings: stopWarnings(t)}, nil
}

func checkPackageReferences(lines []*trip.PackageLine) Outcome {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, l := range lines {
		if l.PackageID().IsZero() {
			row := fmt.Sprintf("row %d", i+1)
			return reject(RuleEmptyPackage, []string{row},
				"there are empty package lines, delete them (%s)", row)
		}
		if _, ok := seen[l.PackageID()]; ok {
			id := l.PackageID().String()
			return reject(RuleDuplicatePackage, []string{id},
				"package %s is already in this trip", id)
		}
		seen[l.PackageID()] = struct{}{}
	}
	return Outcome{}
}

func checkDestinations(lines []*trip.PackageLine) Outcome {
	var missing []string
	for _, l := range lines {
		if l.Destination().IsEmpty() {
			missing = append(missing, l.PackageID().String())
		}
	}
	if len(missing) > 0 {
		return reject(RuleMissingDestination, missing,
			"all packages must have a destination, the following packages do not have it: %s",
			joinSubjects(missing))
	}
	return Outcome{}
}

func checkDuplicateStops(stops []*trip.StopLine) Outcome {
	seen := make(map[kernel.Destination]struct{}, len(stops))
	for _, s := range stops {
		if s.Stop().IsEmpty() {
			continue
		}
		if _, ok := seen[s.Stop()]; ok {
			return reject(RuleDuplicateStop, []string{s.Stop().String()},
				"stop %s is already in this trip", s.Stop())
		}
		seen[s.Stop()] = struct{}{}
	}
	return Outcome{}
}

func (v *TripValidator) checkEndEvents(lines []*trip.PackageLine) Outcome {
	var invalid []string
	for _, l := range lines {
		if l.HasEndEvent() && !v.ranking.IsEndStage(l.EndEvent()) {
			invalid = append(invalid, fmt.Sprintf("%s - %s", l.PackageID(), l.EndEvent()))
		}
	}
	if len(invalid) > 0 {
		return reject(RuleInvalidEndEvent, invalid,
			"end events must close the trip, the following are lifecycle or unknown stages: %s",
			joinSubjects(invalid))
	}
	return Outcome{}
}

// checkEligibility skips packages previous already carried: a package moved
// to another line is not new to the trip.
func (v *TripValidator) checkEligibility(
	ctx context.Context,
	previous *trip.Trip,
	added []*trip.PackageLine,
	packages PackageReader,
) (Outcome, error) {
	var ineligible []string
	for _, l := range added {
		if previous != nil && previous.HasPackage(l.PackageID()) {
			continue
		}
		p, err := packages.Get(ctx, l.PackageID())
		if err != nil {
			return Outcome{}, err
		}
		if !v.ranking.EligibleForTrip(p.State()) {
			ineligible = append(ineligible, p.ID().String())
		}
	}
	if len(ineligible) > 0 {
		return reject(RuleIneligiblePackage, ineligible,
			"packages %s are not available to be in a transportation trip",
			joinSubjects(ineligible)), nil
	}
	return Outcome{}, nil
}

func stopWarnings(t *trip.Trip) []Warning {
	if !t.State().ReportsStopMismatches() {
		return nil
	}

	missing, extra := stopMismatches(t.Packages(), t.Stops())

	var warnings []Warning
	if len(extra) > 0 {
		subjects := labels(extra)
		warnings = append(warnings, Warning{
			Title:    "Not Used Stops",
			Message:  "the following stops have no packages to be delivered: " + joinSubjects(subjects),
			Subjects: subjects,
		})
	}
	if len(missing) > 0 {
		subjects := labels(missing)
		warnings = append(warnings, Warning{
			Title:    "Missing Stops",
			Message:  "the following stops are not added and some packages have it as destination: " + joinSubjects(subjects),
			Subjects: subjects,
		})
	}
	return warnings
}
