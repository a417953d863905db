package kernel

import (
	"strings"

	"transportation/internal/pkg/errs"
)

// ErrDestinationIsRequired is returned by NewDestination for blank labels.
var ErrDestinationIsRequired = errs.NewValueIsRequiredError("destination")

// Destination is a place label: a package origin or destination, or a trip
// stop. Labels are compared after trimming surrounding whitespace, so
// " Depot " and "Depot" are the same place.
//
// The zero value is the empty destination. It is valid as "not set yet"
// (a package line may be saved without one and caught by validation) but
// is never produced by NewDestination.
type Destination struct {
	label string
}

// NewDestination returns the destination for label, or ErrDestinationIsRequired
// if the label is blank.
func NewDestination(label string) (Destination, error) {
	d := ParseDestination(label)
	if d.IsEmpty() {
		return Destination{}, ErrDestinationIsRequired
	}
	return d, nil
}

// ParseDestination returns the destination for label, mapping blank labels to
// the empty destination instead of failing.
func ParseDestination(label string) Destination {
	return Destination{label: strings.TrimSpace(label)}
}

// String returns the trimmed label.
func (d Destination) String() string {
	return d.label
}

// IsEmpty reports whether no label is set.
func (d Destination) IsEmpty() bool {
	return d.label == ""
}

// IsEqual reports whether both destinations name the same place.
func (d Destination) IsEqual(other Destination) bool {
	return d.label == other.label
}

// Or returns d, or fallback when d is empty.
func (d Destination) Or(fallback Destination) Destination {
	if d.IsEmpty() {
		return fallback
	}
	return d
}
