// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/api/webhook": {
            "post": {
                "description": "Verifies the delivery against the registration of its organization or repository and records pushes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Webhook"],
                "summary": "GitHub webhook receiver",
                "parameters": [
                    {"type": "string", "description": "Event type", "name": "X-GitHub-Event", "in": "header", "required": true},
                    {"type": "string", "description": "sha256=<hex hmac>", "name": "X-Hub-Signature-256", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid payload"},
                    "401": {"description": "Invalid signature"},
                    "404": {"description": "Webhook not registered"},
                    "429": {"description": "Rate limit exceeded"}
                }
            }
        },
        "/api/v1/registrations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Registrations"],
                "summary": "List the caller's webhook registrations",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Registrations"],
                "summary": "Install a GitHub webhook for an organization or repository",
                "responses": {
                    "200": {"description": "OK, the secret is returned once"},
                    "400": {"description": "Bad request"},
                    "409": {"description": "Already registered"},
                    "503": {"description": "Public URL not configured"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Registrations"],
                "summary": "Remove a webhook registration",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not the owner"}}
            }
        },
        "/api/v1/registrations/sources": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Registrations"],
                "summary": "List organizations and repositories the GitHub token can administer",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}}
            }
        },
        "/api/v1/reflections": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reflections"],
                "summary": "List the caller's reflections, newest first",
                "parameters": [
                    {"type": "string", "name": "repository", "in": "query"},
                    {"type": "string", "enum": ["pending", "completed", "skipped"], "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}}
            }
        },
        "/api/v1/reflections/summary": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reflections"],
                "summary": "Summarise written reflections with Gemini",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Nothing to summarise"},
                    "503": {"description": "Summary unavailable"}
                }
            }
        },
        "/api/v1/reflections/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Reflections"],
                "summary": "Get one reflection",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reflections"],
                "summary": "Write or skip a reflection",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}, "404": {"description": "Not found"}}
            }
        },
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "API is healthy"}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness Check", "responses": {"200": {"description": "API is ready"}, "503": {"description": "A dependency is unavailable"}}}},
        "/live": {"get": {"tags": ["Health"], "summary": "Liveness Check", "responses": {"200": {"description": "API is alive"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Push to Memory API",
	Description:      "Turns GitHub pushes into pending reflection records and lets their owner write, skip and summarise them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
