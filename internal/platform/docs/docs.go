// Package docs registers the OpenAPI document served under /swagger.
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
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets": {
            "get": {
                "tags": ["pets"],
                "summary": "List every pet",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}},
                    "204": {"description": "No pets stored"}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Delete a pet",
                "parameters": [{"type": "integer", "format": "int64", "name": "id", "in": "header", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Missing or malformed id", "schema": {"$ref": "#/definitions/Problem"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/pets/create": {
            "post": {
                "tags": ["pets"],
                "summary": "Add a new pet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Pet"}},
                    {"type": "string", "name": "Idempotency-Key", "in": "header"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "Invalid pet", "schema": {"$ref": "#/definitions/Problem"}},
                    "409": {"description": "Idempotency key reused", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/pets/update": {
            "put": {
                "tags": ["pets"],
                "summary": "Replace an existing pet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Pet"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "Invalid pet", "schema": {"$ref": "#/definitions/Problem"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Problem"}},
                    "409": {"description": "Stale version", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/pets/search": {
            "get": {
                "tags": ["pets"],
                "summary": "Search pets; every supplied filter must match",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "string", "name": "breed", "in": "query"},
                    {"type": "integer", "format": "int64", "name": "age", "in": "query"},
                    {"type": "string", "name": "gender", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "size", "in": "query", "description": "NORMAL, MEDIUM or LARGE filters by pet size; a number selects the page size"},
                    {"type": "boolean", "name": "castrated", "in": "query"},
                    {"type": "boolean", "name": "dewormed", "in": "query"},
                    {"type": "boolean", "name": "vaccinated", "in": "query"},
                    {"type": "string", "name": "description", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}},
                    "400": {"description": "Malformed parameters", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/pets/{id}": {
            "get": {
                "tags": ["pets"],
                "summary": "Find pet by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "format": "int64", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "Malformed id", "schema": {"$ref": "#/definitions/Problem"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "List every user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/PublicUser"}}},
                    "204": {"description": "No users stored"}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"type": "integer", "format": "int64", "name": "id", "in": "header", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Missing or malformed id", "schema": {"$ref": "#/definitions/Problem"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/users/create": {
            "post": {
                "tags": ["users"],
                "summary": "Register a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/User"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/PublicUser"}},
                    "400": {"description": "Invalid user", "schema": {"$ref": "#/definitions/Problem"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/users/update": {
            "put": {
                "tags": ["users"],
                "summary": "Replace an existing user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/User"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PublicUser"}},
                    "400": {"description": "Invalid user", "schema": {"$ref": "#/definitions/Problem"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Problem"}},
                    "409": {"description": "Stale version or username taken", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/users/search": {
            "get": {
                "tags": ["users"],
                "summary": "Search users; every supplied filter must match",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "string", "name": "email", "in": "query"},
                    {"type": "boolean", "name": "active", "in": "query"},
                    {"type": "string", "enum": ["NORMAL", "OPERATOR", "ADMIN"], "name": "role", "in": "query"},
                    {"type": "string", "name": "username", "in": "query"},
                    {"type": "string", "name": "phoneNumber", "in": "query"},
                    {"type": "string", "name": "city", "in": "query"},
                    {"type": "string", "name": "state", "in": "query"},
                    {"type": "string", "name": "country", "in": "query"},
                    {"type": "string", "name": "postalCode", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}},
                    "400": {"description": "Malformed parameters", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Find user by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "format": "int64", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PublicUser"}},
                    "400": {"description": "Malformed id", "schema": {"$ref": "#/definitions/Problem"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Problem"}}
                }
            }
        }
    },
    "definitions": {
        "Pet": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "id": {"type": "integer", "format": "int64"},
                "name": {"type": "string"},
                "age": {"type": "integer", "format": "int64"},
                "gender": {"type": "string"},
                "breed": {"type": "string"},
                "size": {"type": "string", "enum": ["NORMAL", "MEDIUM", "LARGE"]},
                "castrated": {"type": "boolean"},
                "dewormed": {"type": "boolean"},
                "vaccinated": {"type": "boolean"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "version": {"type": "integer", "format": "int64"},
                "sponsorIds": {"type": "array", "readOnly": true, "items": {"type": "integer", "format": "int64"}}
            }
        },
        "Contact": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "phoneNumber": {"type": "string"}
            }
        },
        "Address": {
            "type": "object",
            "properties": {
                "street": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "country": {"type": "string"},
                "postalCode": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "required": ["name", "username"],
            "properties": {
                "id": {"type": "integer", "format": "int64"},
                "name": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string", "format": "password"},
                "contact": {"$ref": "#/definitions/Contact"},
                "address": {"$ref": "#/definitions/Address"},
                "active": {"type": "boolean"},
                "role": {"type": "string", "enum": ["NORMAL", "OPERATOR", "ADMIN"]},
                "profileImageUrl": {"type": "string"},
                "version": {"type": "integer", "format": "int64"},
                "favoritePetIds": {"type": "array", "items": {"type": "integer", "format": "int64"}},
                "sponsoredPetIds": {"type": "array", "items": {"type": "integer", "format": "int64"}}
            }
        },
        "PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "format": "int64"},
                "name": {"type": "string"},
                "username": {"type": "string"},
                "contact": {"$ref": "#/definitions/Contact"},
                "address": {"$ref": "#/definitions/Address"},
                "active": {"type": "boolean"},
                "role": {"type": "string"},
                "profileImageUrl": {"type": "string"},
                "version": {"type": "integer", "format": "int64"},
                "favoritePetIds": {"type": "array", "items": {"type": "integer", "format": "int64"}},
                "sponsoredPetIds": {"type": "array", "items": {"type": "integer", "format": "int64"}}
            }
        },
        "Page": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"type": "object"}},
                "totalElements": {"type": "integer", "format": "int64"},
                "totalPages": {"type": "integer"},
                "number": {"type": "integer"},
                "size": {"type": "integer"},
                "numberOfElements": {"type": "integer"},
                "first": {"type": "boolean"},
                "last": {"type": "boolean"},
                "empty": {"type": "boolean"},
                "sort": {"type": "array", "items": {"type": "object", "properties": {"property": {"type": "string"}, "direction": {"type": "string"}}}}
            }
        },
        "Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
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
	Title:            "Paws Adoption API",
	Description:      "Pets and users of an animal adoption service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
