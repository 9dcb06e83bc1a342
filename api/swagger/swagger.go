package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Study Plan API",
        "description": "Transcript evaluation, prerequisite checking and course recommendations",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "StudyPlans", "description": "Study plan checks and exports"},
        {"name": "Curriculum", "description": "Active grading policy"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A backing dependency is unavailable"}
                }
            }
        },
        "/api/v1/study-plans/check": {
            "post": {
                "tags": ["StudyPlans"],
                "summary": "Check a study plan",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "requirements", "in": "formData", "type": "file", "required": false, "description": "University requirements table (csv, tsv, xlsx, html); optional when the stored catalog is enabled"},
                    {"name": "history", "in": "formData", "type": "file", "required": true, "description": "Student history table with Rank, Course name and Grade columns"},
                    {"name": "selectedCourses", "in": "formData", "type": "string", "required": false, "description": "Tab separated block with a Course Code header and optional Group column"},
                    {"name": "level", "in": "formData", "type": "string", "required": false, "description": "Target level, e.g. 3Junior or Junior"},
                    {"name": "term", "in": "formData", "type": "string", "required": false, "description": "Restrict recommendations to one term"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudyPlanEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/study-plans/export": {
            "post": {
                "tags": ["StudyPlans"],
                "summary": "Export one study plan table",
                "consumes": ["multipart/form-data"],
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "requirements", "in": "formData", "type": "file", "required": false},
                    {"name": "history", "in": "formData", "type": "file", "required": true},
                    {"name": "selectedCourses", "in": "formData", "type": "string", "required": false},
                    {"name": "level", "in": "formData", "type": "string", "required": false},
                    {"name": "term", "in": "formData", "type": "string", "required": false},
                    {"name": "table", "in": "formData", "type": "string", "required": true, "enum": ["transcript", "selected", "failing", "prerequisites", "recommendations", "confirmed"]},
                    {"name": "format", "in": "formData", "type": "string", "required": true, "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file", "schema": {"type": "file"}},
                    "400": {"description": "Invalid input or unavailable table", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/curriculum/policy": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "Active curriculum policy",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "TranscriptRecord": {
            "type": "object",
            "properties": {
                "course_code": {"type": "string"},
                "grade": {"type": "string"},
                "course_name": {"type": "string"},
                "program": {"type": "string"},
                "level": {"type": "string"},
                "term": {"type": "string"},
                "status": {"type": "string", "enum": ["Pass", "Fail"]}
            }
        },
        "PrerequisiteResult": {
            "type": "object",
            "properties": {
                "course_code": {"type": "string"},
                "status": {"type": "string", "enum": ["Met", "Missing", "No prerequisite information available"]},
                "missing": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Recommendation": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "term": {"type": "string"},
                "course_code": {"type": "string"},
                "course_name": {"type": "string"},
                "status": {"type": "string"},
                "missing": {"type": "array", "items": {"type": "string"}},
                "enrollment_state": {"type": "string", "enum": ["Fail", "Unenrolled"]}
            }
        },
        "SectionError": {
            "type": "object",
            "properties": {
                "section": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "StudyPlanReport": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "generated_at": {"type": "string"},
                "level": {"type": "string"},
                "term": {"type": "string"},
                "transcript": {"type": "array", "items": {"$ref": "#/definitions/TranscriptRecord"}},
                "selected_courses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "course_code": {"type": "string"},
                            "group": {"type": "string"}
                        }
                    }
                },
                "credits": {
                    "type": "object",
                    "properties": {
                        "total_credits": {"type": "number"},
                        "cap": {"type": "number"},
                        "exceeds": {"type": "boolean"}
                    }
                },
                "failing_courses": {"type": "array", "items": {"$ref": "#/definitions/TranscriptRecord"}},
                "prerequisites": {"type": "array", "items": {"$ref": "#/definitions/PrerequisiteResult"}},
                "recommendations": {"type": "array", "items": {"$ref": "#/definitions/Recommendation"}},
                "confirmed": {"type": "array", "items": {"type": "string"}},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/SectionError"}}
            }
        },
        "StudyPlanEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/StudyPlanReport"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
