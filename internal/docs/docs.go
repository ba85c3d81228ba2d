// Package docs registers the swagger document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/api": {
            "get": {
                "produces": ["application/hal+json"],
                "tags": ["events"],
                "summary": "API entry point",
                "operationId": "index",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.IndexResource"}
                    }
                }
            }
        },
        "/api/events": {
            "get": {
                "description": "Offset pagination; page is zero-based.",
                "produces": ["application/hal+json"],
                "tags": ["events"],
                "summary": "Query events",
                "operationId": "query-events",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Zero-based page index", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size (max 100)", "name": "size", "in": "query"},
                    {"type": "string", "description": "field[,asc|desc]; field in id, name, beginEventDateTime, beginEnrollmentDateTime, basePrice", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.PagedEventsResource"}
                    },
                    "304": {"description": "Not modified"},
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "post": {
                "description": "Creates a DRAFT event. free/offline are derived from the prices and location.",
                "consumes": ["application/json"],
                "produces": ["application/hal+json"],
                "tags": ["events"],
                "summary": "Create an event",
                "operationId": "create-event",
                "parameters": [
                    {
                        "description": "Event to create",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/event.CreateEventRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/handlers.EventResource"},
                        "headers": {
                            "Location": {"type": "string", "description": "URL of the new event"}
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            }
        },
        "/api/events/{id}": {
            "get": {
                "produces": ["application/hal+json"],
                "tags": ["events"],
                "summary": "Get an event",
                "operationId": "get-an-event",
                "parameters": [
                    {"type": "integer", "description": "Event id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.EventResource"}
                    },
                    "304": {"description": "Not modified"},
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "put": {
                "description": "Replaces every mutable field; free/offline are recomputed. Status is unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/hal+json"],
                "tags": ["events"],
                "summary": "Update an event",
                "operationId": "update-event",
                "parameters": [
                    {"type": "integer", "description": "Event id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Replacement event",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/event.UpdateEventRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.EventResource"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "event.CreateEventRequest": {
            "type": "object",
            "required": ["name", "beginEnrollmentDateTime", "closeEnrollmentDateTime", "beginEventDateTime", "endEventDateTime", "limitOfEnrollment"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 2000},
                "beginEnrollmentDateTime": {"type": "string", "example": "2020-04-20T17:00:00"},
                "closeEnrollmentDateTime": {"type": "string", "example": "2020-04-21T17:00:00"},
                "beginEventDateTime": {"type": "string", "example": "2020-04-22T17:00:00"},
                "endEventDateTime": {"type": "string", "example": "2020-04-23T17:00:00"},
                "location": {"type": "string", "maxLength": 200},
                "basePrice": {"type": "integer", "minimum": 0},
                "maxPrice": {"type": "integer", "minimum": 0},
                "limitOfEnrollment": {"type": "integer", "minimum": 1}
            }
        },
        "event.UpdateEventRequest": {
            "$ref": "#/definitions/event.CreateEventRequest"
        },
        "event.Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "param": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "requestId": {"type": "string"},
                "details": {}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handlers.APIError"},
                "_links": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.Link"}
                }
            }
        },
        "handlers.Link": {
            "type": "object",
            "properties": {
                "href": {"type": "string"}
            }
        },
        "handlers.EventResource": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "beginEnrollmentDateTime": {"type": "string"},
                "closeEnrollmentDateTime": {"type": "string"},
                "beginEventDateTime": {"type": "string"},
                "endEventDateTime": {"type": "string"},
                "location": {"type": "string"},
                "basePrice": {"type": "integer"},
                "maxPrice": {"type": "integer"},
                "limitOfEnrollment": {"type": "integer"},
                "offline": {"type": "boolean"},
                "free": {"type": "boolean"},
                "eventStatus": {"type": "string", "enum": ["DRAFT"]},
                "_links": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.Link"}
                }
            }
        },
        "handlers.EventsEmbedded": {
            "type": "object",
            "properties": {
                "eventList": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/handlers.EventResource"}
                }
            }
        },
        "handlers.PageMetadata": {
            "type": "object",
            "properties": {
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "number": {"type": "integer"}
            }
        },
        "handlers.PagedEventsResource": {
            "type": "object",
            "properties": {
                "_embedded": {"$ref": "#/definitions/handlers.EventsEmbedded"},
                "_links": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.Link"}
                },
                "page": {"$ref": "#/definitions/handlers.PageMetadata"}
            }
        },
        "handlers.IndexResource": {
            "type": "object",
            "properties": {
                "_links": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.Link"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event REST API",
	Description:      "Hypermedia (HAL) API for creating, querying and updating events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
