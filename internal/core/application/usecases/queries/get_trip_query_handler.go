package queries

import (
	"context"
)

// GetTripQueryHandler reads a trip through a TripReader.
type GetTripQueryHandler struct {
	trips TripReader
}

func NewGetTripQueryHandler(trips TripReader) GetTripQueryHandler {
	return GetTripQueryHandler{trips: trips}
}

// Handle returns errs.ObjectNotFoundError for an unknown trip.
func (h GetTripQueryHandler) Handle(ctx context.Context, query GetTripQuery) (GetTripQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTripQueryResponse{}, err
	}

	t, err := h.trips.Get(ctx, query.TripID())
	if err != nil {
		return GetTripQueryResponse{}, err
	}

	resp := GetTripQueryResponse{
		ID:       t.ID(),
		State:    t.State().String(),
		Packages: make([]TripPackageLine, 0, len(t.Packages())),
		Stops:    make([]TripStop, 0, len(t.Stops())),
	}
	for _, l := range t.Packages() {
		resp.Packages = append(resp.Packages, TripPackageLine{
			ID:             l.ID(),
			PackageID:      l.PackageID(),
			Destination:    l.Destination().String(),
			ToCollect:      l.ToCollect(),
			EndEvent:       string(l.EndEvent()),
			EndDestination: l.EndDestination().String(),
		})
	}
	for _, s := range t.Stops() {
		resp.Stops = append(resp.Stops, TripStop{ID: s.ID(), Stop: s.Stop().String()})
	}

	return resp, nil
}
