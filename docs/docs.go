// Package docs registers the Swagger document of the restaurant API.
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
        "/menu": {
            "get": {
                "produces": ["application/json"],
                "summary": "List menu",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/main.menuItemResponse"}}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add menu item",
                "parameters": [
                    {
                        "description": "Menu item",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/main.addMenuItemRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.menuItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/menu/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get menu item",
                "parameters": [
                    {"type": "integer", "description": "Menu item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.menuItemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "summary": "List orders",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/main.orderResponse"}}
                    }
                }
            },
            "post": {
                "produces": ["application/json"],
                "summary": "Create order",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.orderResponse"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get order",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.orderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/orders/{id}/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add item to order",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Line item",
                        "name": "line",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/main.addItemRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.orderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/orders/{id}/complete": {
            "post": {
                "produces": ["application/json"],
                "summary": "Complete order",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.orderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "main.addItemRequest": {
            "type": "object",
            "properties": {
                "menu_item_id": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "main.addMenuItemRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "main.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "main.menuItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "order.Line": {
            "type": "object",
            "properties": {
                "menu_item_id": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "main.orderResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "id": {"type": "integer"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/order.Line"}},
                "status": {"type": "string", "enum": ["Pending", "Completed"]},
                "summary": {"type": "string"},
                "total": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8443",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Restaurant API",
	Description:      "API for managing a restaurant menu and customer orders",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
