// Package servers holds the HTTP models and the echo routing glue for the
// operations of api/openapi.yaml, laid out the way oapi-codegen emits them.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for TripState.
const (
	Planned   TripState = "planned"
	Loaded    TripState = "loaded"
	Transit   TripState = "transit"
	Completed TripState = "completed"
)

// TripState defines model for TripState.
type TripState string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Violation defines model for Violation.
type Violation struct {
	Code     int      `json:"code"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Subjects []string `json:"subjects"`
}

// Message defines model for Message.
type Message struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PackageLine defines model for PackageLine.
type PackageLine struct {
	Id             *openapi_types.UUID `json:"id,omitempty"`
	Package        *openapi_types.UUID `json:"package,omitempty"`
	Destination    *string             `json:"destination,omitempty"`
	ToCollect      *bool               `json:"to_collect,omitempty"`
	EndEvent       *string             `json:"end_event,omitempty"`
	EndDestination *string             `json:"end_destination,omitempty"`
}

// Stop defines model for Stop.
type Stop struct {
	Id   *openapi_types.UUID `json:"id,omitempty"`
	Stop *string             `json:"stop,omitempty"`
}

// TripInput defines model for TripInput.
type TripInput struct {
	State    TripState      `json:"state"`
	Packages *[]PackageLine `json:"packages,omitempty"`
	Stops    *[]Stop        `json:"stops,omitempty"`
}

// Trip defines model for Trip.
type Trip struct {
	Id       openapi_types.UUID `json:"id"`
	State    TripState          `json:"state"`
	Packages []PackageLine      `json:"packages"`
	Stops    []Stop             `json:"stops"`
}

// TripSaved defines model for TripSaved.
type TripSaved struct {
	Trip       Trip      `json:"trip"`
	Messages   []Message `json:"messages"`
	AddedStops []string  `json:"added_stops"`
}

// NewPackage defines model for NewPackage.
type NewPackage struct {
	Id          *openapi_types.UUID `json:"id,omitempty"`
	Origin      *string             `json:"origin,omitempty"`
	Destination string              `json:"destination"`
}

// Package defines model for Package.
type Package struct {
	Id          openapi_types.UUID `json:"id"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	ToCollect   bool               `json:"to_collect"`
	State       string             `json:"state"`
	Events      []PackageEvent     `json:"events"`
}

// PackageEvent defines model for PackageEvent.
type PackageEvent struct {
	Id          openapi_types.UUID  `json:"id"`
	Type        string              `json:"type"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Date        time.Time           `json:"date"`
	Trip        *openapi_types.UUID `json:"trip,omitempty"`
}

// PackageFields defines model for PackageFields.
type PackageFields struct {
	Package     openapi_types.UUID `json:"package"`
	Destination *string            `json:"destination,omitempty"`
	ToCollect   bool               `json:"to_collect"`
}

// PackageFieldsBatch defines model for PackageFieldsBatch.
type PackageFieldsBatch struct {
	Packages []PackageFields `json:"packages"`
}

// SavedPackages defines model for SavedPackages.
type SavedPackages struct {
	Saved []openapi_types.UUID `json:"saved"`
}

// ID defines model for ID.
type ID = openapi_types.UUID

// CreateTripJSONRequestBody defines body for CreateTrip for application/json ContentType.
type CreateTripJSONRequestBody = TripInput

// SaveTripJSONRequestBody defines body for SaveTrip for application/json ContentType.
type SaveTripJSONRequestBody = TripInput

// CreatePackageJSONRequestBody defines body for CreatePackage for application/json ContentType.
type CreatePackageJSONRequestBody = NewPackage

// UpdatePackageFieldsJSONRequestBody defines body for UpdatePackageFields for application/json ContentType.
type UpdatePackageFieldsJSONRequestBody = PackageFieldsBatch

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a package
	// (POST /api/v1/packages)
	CreatePackage(ctx echo.Context) error
	// Copy destination and to-collect flags from trip lines onto packages
	// (POST /api/v1/packages/fields)
	UpdatePackageFields(ctx echo.Context) error
	// Get a package with its event history
	// (GET /api/v1/packages/{id})
	GetPackage(ctx echo.Context, id ID) error
	// Create a trip
	// (POST /api/v1/trips)
	CreateTrip(ctx echo.Context) error
	// Delete a trip and the lifecycle events it created
	// (DELETE /api/v1/trips/{id})
	DeleteTrip(ctx echo.Context, id ID) error
	// Get a trip
	// (GET /api/v1/trips/{id})
	GetTrip(ctx echo.Context, id ID) error
	// Save a trip, creating it when the id is unknown
	// (PUT /api/v1/trips/{id})
	SaveTrip(ctx echo.Context, id ID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreatePackage converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePackage(ctx echo.Context) error {
	return w.Handler.CreatePackage(ctx)
}

// UpdatePackageFields converts echo context to params.
func (w *ServerInterfaceWrapper) UpdatePackageFields(ctx echo.Context) error {
	return w.Handler.UpdatePackageFields(ctx)
}

// GetPackage converts echo context to params.
func (w *ServerInterfaceWrapper) GetPackage(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetPackage(ctx, id)
}

// CreateTrip converts echo context to params.
func (w *ServerInterfaceWrapper) CreateTrip(ctx echo.Context) error {
	return w.Handler.CreateTrip(ctx)
}

// DeleteTrip converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteTrip(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteTrip(ctx, id)
}

// GetTrip converts echo context to params.
func (w *ServerInterfaceWrapper) GetTrip(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetTrip(ctx, id)
}

// SaveTrip converts echo context to params.
func (w *ServerInterfaceWrapper) SaveTrip(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SaveTrip(ctx, id)
}

func bindID(ctx echo.Context) (ID, error) {
	var id ID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo routing the handlers are registered on;
// both *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends BaseURL
// to the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/packages", wrapper.CreatePackage)
	router.POST(baseURL+"/api/v1/packages/fields", wrapper.UpdatePackageFields)
	router.GET(baseURL+"/api/v1/packages/:id", wrapper.GetPackage)
	router.POST(baseURL+"/api/v1/trips", wrapper.CreateTrip)
	router.DELETE(baseURL+"/api/v1/trips/:id", wrapper.DeleteTrip)
	router.GET(baseURL+"/api/v1/trips/:id", wrapper.GetTrip)
	router.PUT(baseURL+"/api/v1/trips/:id", wrapper.SaveTrip)
}
