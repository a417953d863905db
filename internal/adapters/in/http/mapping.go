package http

import (
	"errors"
	"fmt"

	"transportation/internal/core/application/usecases/commands"
	"transportation/internal/core/application/usecases/queries"
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/generated/servers"

	"github.com/google/uuid"
)

// fromWireID converts a required path id.
func fromWireID(id servers.ID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// fromOptionalWireID maps a missing or nil id to the zero UUID, which the
// domain treats as "mint a new one".
func fromOptionalWireID(id *servers.ID) (kernel.UUID, error) {
	if id == nil || *id == uuid.Nil {
		return kernel.UUID{}, nil
	}
	return fromWireID(*id)
}

func toSaveTripCommand(tripID kernel.UUID, body servers.TripInput) (commands.SaveTripCommand, error) {
	state, err := lifecycle.ParseTripState(string(body.State))
	if err != nil {
		return commands.SaveTripCommand{}, err
	}

	var problems []error

	var lines []trip.PackageLineSpec
	if body.Packages != nil {
		for i, in := range *body.Packages {
			spec, lineErr := toPackageLineSpec(in)
			if lineErr != nil {
				problems = append(problems, fmt.Errorf("package line %d: %w", i+1, lineErr))
				continue
			}
			lines = append(lines, spec)
		}
	}

	var stops []commands.StopSpec
	if body.Stops != nil {
		for i, in := range *body.Stops {
			id, stopErr := fromOptionalWireID(in.Id)
			if stopErr != nil {
				problems = append(problems, fmt.Errorf("stop %d: %w", i+1, stopErr))
				continue
			}
			stops = append(stops, commands.StopSpec{ID: id, Stop: kernel.ParseDestination(deref(in.Stop))})
		}
	}

	if err = errors.Join(problems...); err != nil {
		return commands.SaveTripCommand{}, err
	}

	return commands.NewSaveTripCommand(tripID, state, lines, stops)
}

// toPackageLineSpec keeps an empty package id as the zero UUID so that the
// validation pipeline reports the empty line.
func toPackageLineSpec(in servers.PackageLine) (trip.PackageLineSpec, error) {
	lineID, err := fromOptionalWireID(in.Id)
	if err != nil {
		return trip.PackageLineSpec{}, err
	}
	packageID, err := fromOptionalWireID(in.Package)
	if err != nil {
		return trip.PackageLineSpec{}, err
	}

	var endEvent lifecycle.Stage
	if raw := deref(in.EndEvent); raw != "" {
		if endEvent, err = lifecycle.ParseStage(raw); err != nil {
			return trip.PackageLineSpec{}, err
		}
	}

	return trip.PackageLineSpec{
		ID:             lineID,
		PackageID:      packageID,
		Destination:    kernel.ParseDestination(deref(in.Destination)),
		ToCollect:      in.ToCollect != nil && *in.ToCollect,
		EndEvent:       endEvent,
		EndDestination: kernel.ParseDestination(deref(in.EndDestination)),
	}, nil
}

func toCreatePackageCommand(body servers.NewPackage) (commands.CreatePackageCommand, error) {
	id, err := fromOptionalWireID(body.Id)
	if err != nil {
		return commands.CreatePackageCommand{}, err
	}
	if id.IsZero() {
		id = kernel.NewUUID()
	}
	return commands.NewCreatePackageCommand(
		id,
		kernel.ParseDestination(deref(body.Origin)),
		kernel.ParseDestination(body.Destination),
	)
}

func toUpdatePackageFieldsCommand(body servers.PackageFieldsBatch) (commands.UpdatePackageFieldsCommand, error) {
	items := make([]commands.PackageFields, 0, len(body.Packages))
	for _, in := range body.Packages {
		// Nil ids are rejected by the command with the item position.
		var packageID kernel.UUID
		if in.Package != uuid.Nil {
			id, err := fromWireID(in.Package)
			if err != nil {
				return commands.UpdatePackageFieldsCommand{}, err
			}
			packageID = id
		}
		items = append(items, commands.PackageFields{
			PackageID:   packageID,
			Destination: kernel.ParseDestination(deref(in.Destination)),
			ToCollect:   in.ToCollect,
		})
	}
	return commands.NewUpdatePackageFieldsCommand(items)
}

func toTrip(resp queries.GetTripQueryResponse) servers.Trip {
	out := servers.Trip{
		Id:       resp.ID.Bytes(),
		State:    servers.TripState(resp.State),
		Packages: make([]servers.PackageLine, len(resp.Packages)),
		Stops:    make([]servers.Stop, len(resp.Stops)),
	}
	for i, l := range resp.Packages {
		id, packageID := l.ID.Bytes(), l.PackageID.Bytes()
		out.Packages[i] = servers.PackageLine{
			Id:             &id,
			Package:        &packageID,
			Destination:    ptr(l.Destination),
			ToCollect:      ptr(l.ToCollect),
			EndEvent:       optional(l.EndEvent),
			EndDestination: optional(l.EndDestination),
		}
	}
	for i, st := range resp.Stops {
		id := st.ID.Bytes()
		out.Stops[i] = servers.Stop{Id: &id, Stop: ptr(st.Stop)}
	}
	return out
}

func toTripSaved(resp queries.GetTripQueryResponse, result commands.SaveTripResult) servers.TripSaved {
	out := servers.TripSaved{
		Trip:       toTrip(resp),
		Messages:   make([]servers.Message, len(result.Outcome.Warnings)),
		AddedStops: make([]string, len(result.AddedStops)),
	}
	for i, w := range result.Outcome.Warnings {
		out.Messages[i] = servers.Message{Title: w.Title, Message: w.Message}
	}
	for i, stop := range result.AddedStops {
		out.AddedStops[i] = stop.String()
	}
	return out
}

func toPackage(resp queries.GetPackageQueryResponse) servers.Package {
	out := servers.Package{
		Id:          resp.ID.Bytes(),
		Origin:      resp.Origin,
		Destination: resp.Destination,
		ToCollect:   resp.ToCollect,
		State:       resp.State,
		Events:      make([]servers.PackageEvent, len(resp.Events)),
	}
	for i, e := range resp.Events {
		event := servers.PackageEvent{
			Id:          e.ID.Bytes(),
			Type:        e.Stage,
			Origin:      e.Origin,
			Destination: e.Destination,
			Date:        e.Date.UTC(),
		}
		if e.TripID != nil {
			tripID := e.TripID.Bytes()
			event.Trip = &tripID
		}
		out.Events[i] = event
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr[T any](v T) *T {
	return &v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
