// Package docs registers the OpenAPI document served under /swagger/.
// It mirrors the swag annotations on the handlers.
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
        "/api/ping/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Catalog store connectivity probe",
                "parameters": [
                    {"type": "string", "description": "Table to probe (default users)", "name": "table", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PingResult"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.PingResult"}}
                }
            }
        },
        "/api/products/": {
            "get": {
                "description": "search takes precedence over category; with neither, every product is returned.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Case-insensitive partial name match", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.productListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/products/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Product detail",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/categories/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.categoriesResponse"}}
                }
            }
        },
        "/api/auth/csrf/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue CSRF cookie",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.detailResponse"}}
                }
            }
        },
        "/api/auth/register/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"description": "Registration form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/api/auth/login/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.detailResponse"}}
                }
            }
        },
        "/api/auth/logout/": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.detailResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.detailResponse"}}
                }
            }
        },
        "/api/auth/me/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PublicAccount"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.detailResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "domain.PingResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "connected": {"type": "boolean"},
                "table_accessible": {"type": "boolean"},
                "url": {"type": "string"},
                "table_name": {"type": "string"},
                "row_count": {"type": "integer"}
            }
        },
        "domain.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string", "example": "19.99"},
                "category": {"type": "string"},
                "image_url": {"type": "string"},
                "stock_quantity": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.PublicAccount": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "is_staff": {"type": "boolean"}
            }
        },
        "handler.productListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "string", "example": "19.99"},
                "category": {"type": "string"},
                "image_url": {"type": "string"},
                "stock_quantity": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "handler.productListResponse": {
            "type": "object",
            "properties": {
                "products": {"type": "array", "items": {"$ref": "#/definitions/handler.productListItem"}},
                "count": {"type": "integer"}
            }
        },
        "handler.categoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.detailResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["username", "email", "password", "password_confirm"],
            "properties": {
                "username": {"type": "string", "maxLength": 150},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "password_confirm": {"type": "string"}
            }
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.PublicAccount"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.PublicAccount"},
                "redirect_url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Session authentication and product catalog backed by an external PostgREST store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
