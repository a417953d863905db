package http

import (
	"net/http"

	"transportation/internal/core/application/usecases/commands"
	"transportation/internal/core/application/usecases/queries"
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	saveTripHandler            commands.SaveTripCommandHandler
	deleteTripHandler          commands.DeleteTripCommandHandler
	createPackageHandler       commands.CreatePackageCommandHandler
	updatePackageFieldsHandler commands.UpdatePackageFieldsCommandHandler

	// Query handlers
	getTripHandler    queries.GetTripQueryHandler
	getPackageHandler queries.GetPackageQueryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	saveTripHandler commands.SaveTripCommandHandler,
	deleteTripHandler commands.DeleteTripCommandHandler,
	createPackageHandler commands.CreatePackageCommandHandler,
	updatePackageFieldsHandler commands.UpdatePackageFieldsCommandHandler,
	getTripHandler queries.GetTripQueryHandler,
	getPackageHandler queries.GetPackageQueryHandler,
) *Server {
	return &Server{
		saveTripHandler:            saveTripHandler,
		deleteTripHandler:          deleteTripHandler,
		createPackageHandler:       createPackageHandler,
		updatePackageFieldsHandler: updatePackageFieldsHandler,
		getTripHandler:             getTripHandler,
		getPackageHandler:          getPackageHandler,
	}
}

// CreateTrip handles POST /api/v1/trips - creates a trip with a new id.
//
//	@Summary	Create a trip
//	@Tags		trips
//	@Accept		json
//	@Produce	json
//	@Param		trip	body		servers.TripInput	true	"Trip"
//	@Success	201		{object}	servers.TripSaved
//	@Failure	400		{object}	servers.Error
//	@Failure	422		{object}	servers.Violation
//	@Router		/trips [post]
func (s *Server) CreateTrip(ctx echo.Context) error {
	return s.saveTrip(ctx, kernel.UUID{}, http.StatusCreated)
}

// SaveTrip handles PUT /api/v1/trips/{id} - saves the full trip. An unknown
// id creates the trip under that id.
//
//	@Summary	Save a trip
//	@Tags		trips
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Trip ID"	format(uuid)
//	@Param		trip	body		servers.TripInput	true	"Trip"
//	@Success	200		{object}	servers.TripSaved
//	@Failure	400		{object}	servers.Error
//	@Failure	422		{object}	servers.Violation
//	@Router		/trips/{id} [put]
func (s *Server) SaveTrip(ctx echo.Context, id servers.ID) error {
	tripID, err := fromWireID(id)
	if err != nil {
		return badRequest(ctx, "Invalid trip id: "+err.Error())
	}
	return s.saveTrip(ctx, tripID, http.StatusOK)
}

func (s *Server) saveTrip(ctx echo.Context, tripID kernel.UUID, status int) error {
	var body servers.TripInput
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := toSaveTripCommand(tripID, body)
	if err != nil {
		return badRequest(ctx, "Invalid trip data: "+err.Error())
	}

	result, err := s.saveTripHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	if !result.Outcome.OK() {
		return writeViolation(ctx, result.Outcome.Violation)
	}

	query, err := queries.NewGetTripQuery(result.TripID)
	if err != nil {
		return writeError(ctx, err)
	}
	saved, err := s.getTripHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(status, toTripSaved(saved, result))
}

// GetTrip handles GET /api/v1/trips/{id}.
//
//	@Summary	Get a trip
//	@Tags		trips
//	@Produce	json
//	@Param		id	path		string	true	"Trip ID"	format(uuid)
//	@Success	200	{object}	servers.Trip
//	@Failure	404	{object}	servers.Error
//	@Router		/trips/{id} [get]
func (s *Server) GetTrip(ctx echo.Context, id servers.ID) error {
	tripID, err := fromWireID(id)
	if err != nil {
		return badRequest(ctx, "Invalid trip id: "+err.Error())
	}

	query, err := queries.NewGetTripQuery(tripID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getTripHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrip(resp))
}

// DeleteTrip handles DELETE /api/v1/trips/{id}. Trips whose packages carry
// end events recorded for the trip are refused with 422.
//
//	@Summary	Delete a trip
//	@Tags		trips
//	@Param		id	path	string	true	"Trip ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	servers.Error
//	@Failure	422	{object}	servers.Violation
//	@Router		/trips/{id} [delete]
func (s *Server) DeleteTrip(ctx echo.Context, id servers.ID) error {
	tripID, err := fromWireID(id)
	if err != nil {
		return badRequest(ctx, "Invalid trip id: "+err.Error())
	}

	cmd, err := commands.NewDeleteTripCommand(tripID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.deleteTripHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	if !result.Outcome.OK() {
		return writeViolation(ctx, result.Outcome.Violation)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePackage handles POST /api/v1/packages - registers a received package.
//
//	@Summary	Register a package
//	@Tags		packages
//	@Accept		json
//	@Produce	json
//	@Param		package	body		servers.NewPackage	true	"Package"
//	@Success	201		{object}	servers.Package
//	@Failure	400		{object}	servers.Error
//	@Router		/packages [post]
func (s *Server) CreatePackage(ctx echo.Context) error {
	var body servers.NewPackage
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := toCreatePackageCommand(body)
	if err != nil {
		return badRequest(ctx, "Invalid package data: "+err.Error())
	}

	if err = s.createPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.writePackage(ctx, cmd.PackageID(), http.StatusCreated)
}

// UpdatePackageFields handles POST /api/v1/packages/fields - copies the
// destination and to-collect flag of trip lines onto their packages.
//
//	@Summary	Update package destinations and to-collect flags
//	@Tags		packages
//	@Accept		json
//	@Produce	json
//	@Param		batch	body		servers.PackageFieldsBatch	true	"Batch"
//	@Success	200		{object}	servers.SavedPackages
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error
//	@Router		/packages/fields [post]
func (s *Server) UpdatePackageFields(ctx echo.Context) error {
	var body servers.PackageFieldsBatch
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := toUpdatePackageFieldsCommand(body)
	if err != nil {
		return badRequest(ctx, "Invalid package fields: "+err.Error())
	}

	saved, err := s.updatePackageFieldsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := servers.SavedPackages{Saved: make([]servers.ID, len(saved))}
	for i, id := range saved {
		response.Saved[i] = id.Bytes()
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPackage handles GET /api/v1/packages/{id}.
//
//	@Summary	Get a package with its event history
//	@Tags		packages
//	@Produce	json
//	@Param		id	path		string	true	"Package ID"	format(uuid)
//	@Success	200	{object}	servers.Package
//	@Failure	404	{object}	servers.Error
//	@Router		/packages/{id} [get]
func (s *Server) GetPackage(ctx echo.Context, id servers.ID) error {
	packageID, err := fromWireID(id)
	if err != nil {
		return badRequest(ctx, "Invalid package id: "+err.Error())
	}
	return s.writePackage(ctx, packageID, http.StatusOK)
}

func (s *Server) writePackage(ctx echo.Context, packageID kernel.UUID, status int) error {
	query, err := queries.NewGetPackageQuery(packageID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getPackageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(status, toPackage(resp))
}
