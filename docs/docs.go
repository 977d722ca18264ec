// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/user/register": {"post": {"tags": ["user"], "summary": "Register a new user", "consumes": ["application/json", "multipart/form-data"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/user/login": {"post": {"tags": ["user"], "summary": "Login user", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Logout user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/user/password": {"put": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Get own profile", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Update own profile", "consumes": ["application/json", "multipart/form-data"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/user/all": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List users", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/user/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Get user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Update user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/property": {
            "get": {"tags": ["property"], "summary": "List active properties", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["property"], "summary": "Create property", "consumes": ["application/json", "multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/property/search": {"get": {"tags": ["property"], "summary": "Search active properties", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/property/mine": {"get": {"security": [{"BearerAuth": []}], "tags": ["property"], "summary": "List own properties", "responses": {"200": {"description": "OK"}}}},
        "/property/{id}": {
            "get": {"tags": ["property"], "summary": "Get property", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["property"], "summary": "Update property", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["property"], "summary": "Delete property", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/room-request": {
            "get": {"tags": ["room-request"], "summary": "List room requests", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["room-request"], "summary": "Create room request", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/room-request/mine": {"get": {"security": [{"BearerAuth": []}], "tags": ["room-request"], "summary": "List own room requests", "responses": {"200": {"description": "OK"}}}},
        "/room-request/{id}": {
            "get": {"tags": ["room-request"], "summary": "Get room request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["room-request"], "summary": "Update room request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["room-request"], "summary": "Delete room request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/subscription/status": {"get": {"security": [{"BearerAuth": []}], "tags": ["subscription"], "summary": "Subscription status", "responses": {"200": {"description": "OK"}}}},
        "/subscription/purchase": {"post": {"security": [{"BearerAuth": []}], "tags": ["subscription"], "summary": "Purchase subscription", "responses": {"200": {"description": "OK"}}}},
        "/subscription/cancel": {"post": {"security": [{"BearerAuth": []}], "tags": ["subscription"], "summary": "Cancel subscription", "responses": {"200": {"description": "OK"}}}},
        "/admin/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Dashboard statistics", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Nestify API",
	Description:      "Property rental and roommate marketplace API with JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
