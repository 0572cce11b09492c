// Package docs registers the OpenAPI document for the survey API with swag.
// Keep it in step with the handler annotations.
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
        "/questions": {
            "get": {
                "produces": ["application/json"],
                "summary": "List the survey questions",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "summary": "Open a survey session",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/model.SessionCreateResponse"}
                    }
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "summary": "Current session state",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/survey.Snapshot"}
                    }
                }
            }
        },
        "/sessions/{id}/answers/{questionId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Record or replace an answer",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Question ID", "name": "questionId", "in": "path", "required": true},
                    {
                        "description": "Text for INTELLIGIBILITY, 1-5 otherwise",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.AnswerRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/survey.Snapshot"}
                    }
                }
            }
        },
        "/sessions/{id}/playback/ended": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "summary": "Report end of media",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/survey.Snapshot"}
                    }
                }
            }
        },
        "/sessions/{id}/playback/{questionId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "summary": "Play a question's clip, or stop it if it is playing",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Question ID", "name": "questionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/survey.Snapshot"}
                    }
                }
            }
        },
        "/sessions/{id}/restart": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "summary": "Clear the session and start over",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/survey.Snapshot"}
                    }
                }
            }
        },
        "/sessions/{id}/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "summary": "Submit the survey",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/survey.Snapshot"}
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.AnswerRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "string"}
            }
        },
        "model.Answer": {
            "type": "object"
        },
        "model.SessionCreateResponse": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "survey.Snapshot": {
            "type": "object",
            "properties": {
                "answered": {"type": "integer"},
                "answers": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/model.Answer"}
                },
                "complete": {"type": "boolean"},
                "playingId": {"type": "integer"},
                "sessionId": {"type": "string"},
                "submitted": {"type": "boolean"},
                "total": {"type": "integer"}
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
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Audio Evaluation Survey API",
	Description:      "Listening survey: play each clip, rate or transcribe it, submit all 30 answers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
