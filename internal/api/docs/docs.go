// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}}
                }
            }
        },
        "/v1/navigation": {
            "get": {
                "tags": ["navigation"],
                "summary": "Authorize a navigation",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "path", "in": "query", "required": true, "type": "string", "description": "Requested front-end path"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/navigationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/patients": {"get": {"tags": ["records"], "summary": "List patients", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/recordListResponse"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "500": {"description": "Internal Server Error"}}}},
        "/v1/appointments": {"get": {"tags": ["records"], "summary": "List appointments", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/recordListResponse"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "500": {"description": "Internal Server Error"}}}},
        "/v1/billing": {"get": {"tags": ["records"], "summary": "List billing entries", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/recordListResponse"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "500": {"description": "Internal Server Error"}}}},
        "/v1/users": {"get": {"tags": ["records"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/recordListResponse"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "500": {"description": "Internal Server Error"}}}}
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "identityResponse": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "doctor", "frontdesk", "guest"]}, "id": {"type": "string"}}
        },
        "loginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/identityResponse"}, "expires_at": {"type": "string", "format": "date-time"}}
        },
        "sessionResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/identityResponse"}, "isAuthenticated": {"type": "boolean"}, "routes": {"type": "array", "items": {"type": "string"}}}
        },
        "navigationResponse": {
            "type": "object",
            "properties": {"path": {"type": "string"}, "decision": {"type": "string", "enum": ["allow", "redirect_to_login", "redirect_to_unauthorized"]}, "redirect": {"type": "string"}}
        },
        "recordListResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"type": "object"}}, "count": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EMR API",
	Description:      "Authentication, navigation guard and record access for the EMR front end.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
