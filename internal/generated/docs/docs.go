// Package docs registers the swagger document served by echo-swagger at
// /swagger/index.html.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/trips": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Create a trip",
                "parameters": [
                    {"description": "Trip", "name": "trip", "in": "body", "required": true, "schema": {"$ref": "#/definitions/servers.TripInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/servers.TripSaved"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/servers.Error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/servers.Violation"}}
                }
            }
        },
        "/trips/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Get a trip",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Trip ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/servers.Trip"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/servers.Error"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Save a trip",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Trip ID", "name": "id", "in": "path", "required": true},
                    {"description": "Trip", "name": "trip", "in": "body", "required": true, "schema": {"$ref": "#/definitions/servers.TripInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/servers.TripSaved"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/servers.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/servers.Error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/servers.Violation"}}
                }
            },
            "delete": {
                "tags": ["trips"],
                "summary": "Delete a trip",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Trip ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/servers.Error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/servers.Violation"}}
                }
            }
        },
        "/packages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["packages"],
                "summary": "Register a package",
                "parameters": [
                    {"description": "Package", "name": "package", "in": "body", "required": true, "schema": {"$ref": "#/definitions/servers.NewPackage"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/servers.Package"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/servers.Error"}}
                }
            }
        },
        "/packages/fields": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["packages"],
                "summary": "Update package destinations and to-collect flags",
                "parameters": [
                    {"description": "Batch", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/servers.PackageFieldsBatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/servers.SavedPackages"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/servers.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/servers.Error"}}
                }
            }
        },
        "/packages/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["packages"],
                "summary": "Get a package with its event history",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Package ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/servers.Package"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/servers.Error"}}
                }
            }
        }
    },
    "definitions": {
        "servers.Error": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "servers.Violation": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "rule": {"type": "string"},
                "message": {"type": "string"},
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "servers.Message": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "message": {"type": "string"}}
        },
        "servers.PackageLine": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "package": {"type": "string", "format": "uuid"},
                "destination": {"type": "string"},
                "to_collect": {"type": "boolean"},
                "end_event": {"type": "string"},
                "end_destination": {"type": "string"}
            }
        },
        "servers.Stop": {
            "type": "object",
            "properties": {"id": {"type": "string", "format": "uuid"}, "stop": {"type": "string"}}
        },
        "servers.TripInput": {
            "type": "object",
            "required": ["state"],
            "properties": {
                "state": {"type": "string", "enum": ["planned", "loaded", "transit", "completed"]},
                "packages": {"type": "array", "items": {"$ref": "#/definitions/servers.PackageLine"}},
                "stops": {"type": "array", "items": {"$ref": "#/definitions/servers.Stop"}}
            }
        },
        "servers.Trip": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "state": {"type": "string"},
                "packages": {"type": "array", "items": {"$ref": "#/definitions/servers.PackageLine"}},
                "stops": {"type": "array", "items": {"$ref": "#/definitions/servers.Stop"}}
            }
        },
        "servers.TripSaved": {
            "type": "object",
            "properties": {
                "trip": {"$ref": "#/definitions/servers.Trip"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/servers.Message"}},
                "added_stops": {"type": "array", "items": {"type": "string"}}
            }
        },
        "servers.NewPackage": {
            "type": "object",
            "required": ["destination"],
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "origin": {"type": "string"},
                "destination": {"type": "string"}
            }
        },
        "servers.PackageEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "type": {"type": "string"},
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "trip": {"type": "string", "format": "uuid"}
            }
        },
        "servers.Package": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "to_collect": {"type": "boolean"},
                "state": {"type": "string"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/servers.PackageEvent"}}
            }
        },
        "servers.PackageFields": {
            "type": "object",
            "required": ["package"],
            "properties": {
                "package": {"type": "string", "format": "uuid"},
                "destination": {"type": "string"},
                "to_collect": {"type": "boolean"}
            }
        },
        "servers.PackageFieldsBatch": {
            "type": "object",
            "properties": {"packages": {"type": "array", "items": {"$ref": "#/definitions/servers.PackageFields"}}}
        },
        "servers.SavedPackages": {
            "type": "object",
            "properties": {"saved": {"type": "array", "items": {"type": "string", "format": "uuid"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Transportation trips API",
	Description:      "Trips carrying packages through stops, with package event histories kept in line with the trip state.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
