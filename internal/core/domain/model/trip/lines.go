package trip

import (
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
)

// PackageLine is one package carried by a trip.
//
// An empty packageID or destination is representable so that a trip with
// such lines reaches validation and is rejected there with a proper message.
type PackageLine struct {
	id             kernel.UUID
	packageID      kernel.UUID
	destination    kernel.Destination
	toCollect      bool
	endEvent       lifecycle.Stage
	endDestination kernel.Destination
}

// PackageLineSpec carries the editable fields of a package line.
type PackageLineSpec struct {
	// ID is the line id. Zero for new lines.
	ID             kernel.UUID
	PackageID      kernel.UUID
	Destination    kernel.Destination
	ToCollect      bool
	EndEvent       lifecycle.Stage
	EndDestination kernel.Destination
}

// NewPackageLine builds a line from spec, minting an id when spec.ID is zero.
func NewPackageLine(spec PackageLineSpec) *PackageLine {
	id := spec.ID
	if id.IsZero() {
		id = kernel.NewUUID()
	}
	return &PackageLine{
		id:             id,
		packageID:      spec.PackageID,
		destination:    spec.Destination,
		toCollect:      spec.ToCollect,
		endEvent:       spec.EndEvent,
		endDestination: spec.EndDestination,
	}
}

func (l *PackageLine) ID() kernel.UUID                    { return l.id }
func (l *PackageLine) PackageID() kernel.UUID             { return l.packageID }
func (l *PackageLine) Destination() kernel.Destination    { return l.destination }
func (l *PackageLine) ToCollect() bool                    { return l.toCollect }
func (l *PackageLine) EndEvent() lifecycle.Stage          { return l.endEvent }
func (l *PackageLine) EndDestination() kernel.Destination { return l.endDestination }

// HasEndEvent reports whether the line records an end event on completion.
func (l *PackageLine) HasEndEvent() bool {
	return l.endEvent != ""
}

// Spec returns the line fields, id included.
func (l *PackageLine) Spec() PackageLineSpec {
	return PackageLineSpec{
		ID:             l.id,
		PackageID:      l.packageID,
		Destination:    l.destination,
		ToCollect:      l.toCollect,
		EndEvent:       l.endEvent,
		EndDestination: l.endDestination,
	}
}

func (l *PackageLine) clone() *PackageLine {
	c := *l
	return &c
}

// StopLine is one stop of a trip.
type StopLine struct {
	id   kernel.UUID
	stop kernel.Destination
}

// NewStopLine builds a stop, minting an id when id is zero.
func NewStopLine(id kernel.UUID, stop kernel.Destination) *StopLine {
	if id.IsZero() {
		id = kernel.NewUUID()
	}
	return &StopLine{id: id, stop: stop}
}

func (s *StopLine) ID() kernel.UUID          { return s.id }
func (s *StopLine) Stop() kernel.Destination { return s.stop }

func (s *StopLine) clone() *StopLine {
	c := *s
	return &c
}
