package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"transportation/internal/pkg/errs"
	"transportation/internal/pkg/guard"
)

// OutOfBandLevel is the level of stages missing from the level table.
const OutOfBandLevel = math.MaxInt

var (
	ErrRankingIsNotConstructed = errors.New("Ranking must be created via NewRanking, DefaultRanking or LoadRanking")
	ErrOrderTableIsRequired    = errs.NewValueIsRequiredError("order table")
)

// Ranking holds the two comparison tables of the lifecycle:
//
//   - the order table lists the tracked lifecycle stages (the ones a trip
//     creates, moves and deletes on its own);
//   - the level table ranks every known stage, tracked or not, and decides
//     which trip-owned events a state regression prunes and which packages
//     may join a trip.
//
// Ranking is immutable: its maps are private copies.
type Ranking struct {
	order  map[Stage]int
	levels map[Stage]int
	guard  guard.ConstructorGuard
}

// NewRanking validates and copies the given tables.
// Every tracked stage must have a level, and the order table must not be empty.
func NewRanking(order, levels map[Stage]int) (Ranking, error) {
	if len(order) == 0 {
		return Ranking{}, ErrOrderTableIsRequired
	}

	var problems []error
	for stage := range order {
		if _, ok := levels[stage]; !ok {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
				"stage level",
				fmt.Errorf("tracked stage %q has no level", stage),
			))
		}
	}
	if _, ok := levels[StageLoaded]; !ok {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
			"stage level",
			fmt.Errorf("stage %q has no level", StageLoaded),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return Ranking{}, err
	}

	r := Ranking{
		order:  make(map[Stage]int, len(order)),
		levels: make(map[Stage]int, len(levels)),
		guard:  guard.NewConstructorGuard(),
	}
	for k, v := range order {
		r.order[k] = v
	}
	for k, v := range levels {
		r.levels[k] = v
	}
	return r, nil
}

// DefaultRanking returns the built-in tables.
func DefaultRanking() Ranking {
	r, err := NewRanking(
		map[Stage]int{
			StagePlanned: 1,
			StageLoaded:  2,
			StageTransit: 3,
		},
		map[Stage]int{
			StageReceived:    0,
			StagePlanned:     1,
			StageLoaded:      2,
			StageTransit:     3,
			StageTransferred: 4,
			StageDelivered:   5,
			StageReturned:    5,
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate ensures the ranking was built by one of the constructors.
func (r Ranking) Validate() error {
	return r.guard.Validate(ErrRankingIsNotConstructed)
}

// Level returns the rank of stage, or OutOfBandLevel if it is unknown.
func (r Ranking) Level(stage Stage) int {
	if level, ok := r.levels[stage]; ok {
		return level
	}
	return OutOfBandLevel
}

// IsKnown reports whether stage has a level.
func (r Ranking) IsKnown(stage Stage) bool {
	_, ok := r.levels[stage]
	return ok
}

// IsTracked reports whether stage belongs to the trip lifecycle.
func (r Ranking) IsTracked(stage Stage) bool {
	_, ok := r.order[stage]
	return ok
}

// TrackedStages returns the lifecycle stages in lifecycle order.
func (r Ranking) TrackedStages() []Stage {
	stages := make([]Stage, 0, len(r.order))
	for stage := range r.order {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool {
		if r.order[stages[i]] != r.order[stages[j]] {
			return r.order[stages[i]] < r.order[stages[j]]
		}
		return stages[i] < stages[j]
	})
	return stages
}

// IsAbove reports whether stage ranks strictly above reference.
func (r Ranking) IsAbove(stage, reference Stage) bool {
	return r.Level(stage) > r.Level(reference)
}

// EligibleForTrip reports whether a package in state may be added to a trip,
// i.e. it has not gone past loaded.
func (r Ranking) EligibleForTrip(state Stage) bool {
	return r.Level(state) <= r.Level(StageLoaded)
}

// IsEndStage reports whether stage can close a package's participation in a
// trip: it is known and not a tracked lifecycle stage.
func (r Ranking) IsEndStage(stage Stage) bool {
	return r.IsKnown(stage) && !r.IsTracked(stage)
}
