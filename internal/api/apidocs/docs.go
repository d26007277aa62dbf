// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package apidocs registers the OpenAPI description of the UI session API
// with swag, where http-swagger serves it at /swagger/doc.json.
//
// The document mirrors the annotations on the handlers in internal/api.
// Keep both in step when a route or envelope changes; the router test
// checks that every session route is described.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/cinematch"
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
        "/ui/sessions": {
            "post": {
                "description": "Starts a session for a client without the page shell and returns the patches that paint every region. Sets the session cookie.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sessions"
                ],
                "summary": "Create UI session",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/api.SessionEnvelope"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/ui/sessions/{id}": {
            "delete": {
                "description": "Ends a session and deletes its snapshot.",
                "tags": [
                    "Sessions"
                ],
                "summary": "Close UI session",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/ui/sessions/{id}/events": {
            "post": {
                "description": "Applies one browser event and returns every pending patch. Results of engine calls arrive later through the patches endpoint.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sessions"
                ],
                "summary": "Dispatch UI event",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Browser event",
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/session.WireEvent"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SessionEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "410": {
                        "description": "Gone",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/ui/sessions/{id}/patches": {
            "get": {
                "description": "Drains patches produced since the last call, restoring the session from its snapshot when needed.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sessions"
                ],
                "summary": "Poll pending patches",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SessionEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {},
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                }
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "duration_ms": {
                    "type": "integer"
                },
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/api.APIError"
                },
                "meta": {
                    "$ref": "#/definitions/api.APIMeta"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "api.SessionEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/api.SessionResponse"
                },
                "meta": {
                    "$ref": "#/definitions/api.APIMeta"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "api.SessionResponse": {
            "type": "object",
            "properties": {
                "patches": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/session.Patch"
                    }
                },
                "session_id": {
                    "type": "string"
                }
            }
        },
        "session.Patch": {
            "type": "object",
            "properties": {
                "html": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                },
                "on": {
                    "type": "boolean"
                },
                "op": {
                    "type": "string",
                    "enum": [
                        "html",
                        "value",
                        "scroll",
                        "scroll-lock",
                        "class",
                        "console"
                    ]
                },
                "target": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "session.WireEvent": {
            "type": "object",
            "required": [
                "event"
            ],
            "properties": {
                "event": {
                    "type": "string",
                    "maxLength": 64,
                    "enum": [
                        "search_submitted",
                        "input_changed",
                        "suggestion_selected",
                        "filters_applied",
                        "modal_opened",
                        "service_worker_registered",
                        "retry_requested",
                        "input_focused",
                        "input_blurred",
                        "escape_pressed",
                        "filters_toggled",
                        "modal_closed",
                        "page_loaded"
                    ]
                },
                "payload": {
                    "type": "object"
                }
            }
        }
    }
}`

// SwaggerInfo holds the exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CineMatch UI Session API",
	Description:      "REST fallback for the CineMatch interaction layer. Browsers without a WebSocket dispatch events here and poll for DOM patches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
