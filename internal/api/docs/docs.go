// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package docs registers the Murmur OpenAPI document with swag so that
// http-swagger can serve it at /api/docs/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/murmur"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/heartbeat": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Service heartbeat",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}}}
            }
        },
        "/feed": {
            "get": {
                "description": "Anonymous viewers and viewers who follow nobody get the global feed. Once the personalized tier runs dry the fallback tier is served and feedFallback is true.",
                "produces": ["application/json"],
                "tags": ["Feed"],
                "summary": "Get the viewer's feed",
                "parameters": [
                    {"type": "integer", "description": "Feed page (1-based)", "name": "feedPage", "in": "query"},
                    {"type": "integer", "description": "Fallback page (1-based)", "name": "fallbackPage", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "400": {"description": "ERR_INVALID_PROPERTIES", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        },
        "/posts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Create a post",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "400": {"description": "ERR_INVALID_PROPERTIES", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        },
        "/posts/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Search posts by tag",
                "parameters": [
                    {"type": "string", "name": "sortType", "in": "query"},
                    {"type": "string", "name": "postType", "in": "query"},
                    {"type": "string", "name": "searchQuery", "in": "query"},
                    {"type": "integer", "name": "searchPage", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}}}
            }
        },
        "/posts/{postId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Get a post",
                "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "404": {"description": "ERR_NOT_FOUND", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        },
        "/posts/{postId}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Get a page of a post's comment trees",
                "parameters": [
                    {"type": "integer", "name": "postId", "in": "path", "required": true},
                    {"type": "integer", "name": "commentPage", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "404": {"description": "ERR_NOT_FOUND", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Comment on a post",
                "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "400": {"description": "ERR_INVALID_PROPERTIES", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        },
        "/comments/{commentId}/tree": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Get a comment with its full reply tree",
                "parameters": [{"type": "integer", "name": "commentId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "404": {"description": "ERR_NOT_FOUND", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        },
        "/users/{userName}/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a profile",
                "parameters": [{"type": "string", "name": "userName", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "404": {"description": "ERR_NOT_FOUND", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        },
        "/users/{userName}/follows": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Follow a user",
                "parameters": [{"type": "string", "name": "userName", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ActionResult"}},
                    "400": {"description": "ERR_ALREADY_FOLLOWED or ERR_SELF_FOLLOW", "schema": {"$ref": "#/definitions/api.ActionResult"}}
                }
            }
        }
    },
    "definitions": {
        "api.ActionResult": {
            "type": "object",
            "properties": {
                "actionResult": {"type": "string", "example": "SUCCESS"},
                "invalidProperties": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Murmur API",
	Description:      "Social feed and threaded discussion service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
