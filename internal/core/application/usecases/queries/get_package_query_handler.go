package queries

import (
	"context"
)

// GetPackageQueryHandler reads a package through a PackageReader.
type GetPackageQueryHandler struct {
	packages PackageReader
}

func NewGetPackageQueryHandler(packages PackageReader) GetPackageQueryHandler {
	return GetPackageQueryHandler{packages: packages}
}

func (h GetPackageQueryHandler) Handle(ctx context.Context, query GetPackageQuery) (GetPackageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackageQueryResponse{}, err
	}

	p, err := h.packages.Get(ctx, query.PackageID())
	if err != nil {
		return GetPackageQueryResponse{}, err
	}

	events := p.Events()
	resp := GetPackageQueryResponse{
		ID:          p.ID(),
		Origin:      p.Origin().String(),
		Destination: p.Destination().String(),
		ToCollect:   p.ToCollect(),
		State:       string(p.State()),
		Events:      make([]PackageEvent, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, PackageEvent{
			ID:          e.ID(),
			Stage:       string(e.Stage()),
			Origin:      e.Origin().String(),
			Destination: e.Destination().String(),
			Date:        e.Date(),
			TripID:      e.TripID(),
		})
	}

	return resp, nil
}
