// Package docs registers the Swagger document served at /swagger/.
// Regenerate the paths with `swag init -g cmd/main.go`.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/user/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts of a user",
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/post/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Post detail",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/post/new/": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "tags": ["posts"],
                "summary": "Create post",
                "responses": {
                    "302": {"description": "redirect to /post/{id}/"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/post/{id}/update/": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "tags": ["posts"],
                "summary": "Update post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "302": {"description": "redirect to /post/{id}/"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/post/{id}/delete/": {
            "post": {
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "302": {"description": "redirect to /"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/register/": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Register",
                "responses": {
                    "302": {"description": "redirect to /login/"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/login/": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "redirect to next"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/logout/": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/profile/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Own profile",
                "responses": {"200": {"description": "OK"}, "302": {"description": "redirect to login"}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["profile"],
                "summary": "Update profile",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "file", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "redirect to /profile/"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/about/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "About page",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ws/feed": {
            "get": {
                "tags": ["posts"],
                "summary": "Live feed",
                "parameters": [
                    {"type": "string", "name": "interval", "in": "query"},
                    {"type": "integer", "name": "interval_ms", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}}
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
	Title:            "Blog API",
	Description:      "Posts, accounts and profiles of a small multi-author blog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
