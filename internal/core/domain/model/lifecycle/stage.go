package lifecycle

import (
	"strings"

	"transportation/internal/pkg/errs"
)

// ErrStageIsRequired is returned by ParseStage for blank input.
var ErrStageIsRequired = errs.NewValueIsRequiredError("stage")

// Stage names a package state or a package event type.
type Stage string

// Built-in stages. Deployments may rank additional stages through the
// level table; unknown stages compare as out-of-band.
const (
	StageReceived    Stage = "received"
	StagePlanned     Stage = "planned"
	StageLoaded      Stage = "loaded"
	StageTransit     Stage = "transit"
	StageTransferred Stage = "transferred"
	StageDelivered   Stage = "delivered"
	StageReturned    Stage = "returned"
)

// ParseStage lowercases and trims s.
func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	if stage == "" {
		return "", ErrStageIsRequired
	}
	return stage, nil
}

func (s Stage) String() string {
	return string(s)
}
