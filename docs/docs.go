// Package docs registers the OpenAPI document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Scoracle"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Returns basic health status and timestamp.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health/db": {
            "get": {
                "description": "Verifies Postgres connectivity. Reports \"disabled\" when no database is configured.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Database health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/schedule": {
            "get": {
                "description": "Fetches each season from the NHL stats API and returns one row per regular-season or playoff game. Scores, overtime count and shootout flag are null unless the game is final.",
                "produces": ["application/json", "text/csv"],
                "tags": ["tidy"],
                "summary": "Get tidy schedule",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Season ID, e.g. 20192020. Repeat or comma-separate for several.", "name": "season", "in": "query", "required": true},
                    {"type": "boolean", "default": true, "description": "Include regular-season games", "name": "regular", "in": "query"},
                    {"type": "boolean", "default": true, "description": "Include playoff games", "name": "playoffs", "in": "query"},
                    {"type": "string", "description": "IANA time zone for game_datetime (defaults to TZ_NAME)", "name": "tz", "in": "query"},
                    {"type": "boolean", "default": false, "description": "Keep *_id columns", "name": "keep_id", "in": "query"},
                    {"enum": ["json", "csv"], "type": "string", "default": "json", "description": "Response format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.TableResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/draft": {
            "get": {
                "description": "Fetches each draft year and returns one row per pick sorted by year then overall pick.",
                "produces": ["application/json", "text/csv"],
                "tags": ["tidy"],
                "summary": "Get tidy draft",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Draft year, e.g. 2019. Repeat or comma-separate for several.", "name": "year", "in": "query", "required": true},
                    {"type": "boolean", "default": false, "description": "Keep *_id columns", "name": "keep_id", "in": "query"},
                    {"enum": ["json", "csv"], "type": "string", "default": "json", "description": "Response format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.TableResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/catalog/seasons": {
            "get": {
                "description": "Returns the season catalog in ascending order.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List known seasons",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/catalog/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List known teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/catalog/drafts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List known draft years",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"},
                        "keys": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "respond.TableResponse": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"},
                "data": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Scoracle NHL API",
	Description:      "Tidy NHL schedule and draft tables built from the public NHL stats API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
