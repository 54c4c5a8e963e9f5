// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/inmobiliaria/main.go
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
        "/api/v1/properties": {
            "get": {
                "description": "Inmuebles disponibles con filtros, orden y paginación de 12 por página.",
                "produces": ["application/json"],
                "tags": ["inmuebles"],
                "summary": "Listado de inmuebles",
                "parameters": [
                    {"type": "string", "description": "venta o arriendo", "name": "operacion", "in": "query"},
                    {"type": "integer", "description": "Mínimo de habitaciones", "name": "habitaciones", "in": "query"},
                    {"type": "string", "description": "recientes, precio-asc o precio-desc", "name": "orden", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Página", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/properties/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["inmuebles"],
                "summary": "Detalle de un inmueble",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/blog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blog"],
                "summary": "Entradas publicadas del blog",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/leads": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contactos"],
                "summary": "Registrar un contacto",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/admin/import": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Importar inmuebles",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "name": "dry_run", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Inmobiliaria API",
	Description:      "Catálogo de inmuebles, blog y contactos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
