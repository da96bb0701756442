// Package docs registers the Swagger document for the pickup API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/pickups": {
            "post": {
                "summary": "Create a pickup request and try to assign the nearest worker",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewPickup"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Pickup"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/pickups/unassigned": {
            "get": {
                "summary": "List pickups waiting for a worker",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Pickup"}}}}
            }
        },
        "/pickups/{id}/assign": {
            "post": {
                "summary": "Assign a specific worker, ignoring capacity",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/WorkerRef"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pickup"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/pickups/{id}/auto-assign": {
            "post": {
                "summary": "Assign the nearest worker with spare capacity",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AutoAssignment"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/pickups/{id}/status": {
            "put": {
                "summary": "Report a status change by the assigned worker",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/StatusReport"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pickup"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/pickups/{id}/reached": {
            "put": {
                "summary": "Mark the pickup location as reached",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/WorkerRef"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Pickup"}}}
            }
        },
        "/pickups/{id}/reschedule": {
            "post": {
                "summary": "Move the pickup to another date",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RescheduleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Pickup"}}}
            }
        },
        "/pickups/{id}/history": {
            "get": {
                "summary": "Status history of a pickup, newest first",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Log"}}}}
            }
        },
        "/assignments/assign-all": {
            "post": {
                "summary": "Try to assign every unassigned pickup",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/BulkAssignment"}}}
            }
        },
        "/assignments/nearby-workers": {
            "get": {
                "summary": "Workers within a radius of a pincode",
                "parameters": [
                    {"in": "query", "name": "pincode", "type": "string", "required": true},
                    {"in": "query", "name": "radius_km", "type": "number"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Worker"}}}}
            }
        },
        "/workers": {
            "post": {
                "summary": "Register a worker",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewWorker"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Worker"}}}
            }
        },
        "/workers/{id}/assignments": {
            "get": {
                "summary": "Assignment count and availability of a worker",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "query", "name": "max", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/WorkerLoad"}}}
            }
        },
        "/workers/{id}/pickups": {
            "get": {
                "summary": "Pickups assigned to a worker",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "query", "name": "scope", "type": "string", "enum": ["all", "today", "missed"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Pickup"}}}}
            }
        },
        "/workers/{id}/logs": {
            "get": {
                "summary": "Status changes made by a worker, newest first",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Log"}}}}
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}},
        "Address": {"type": "object", "properties": {
            "line": {"type": "string"}, "city": {"type": "string"}, "state": {"type": "string"}, "pincode": {"type": "string"}
        }},
        "NewPickup": {"type": "object", "properties": {
            "requester_id": {"type": "string"}, "contact_name": {"type": "string"}, "contact_phone": {"type": "string"},
            "contact_email": {"type": "string"}, "address": {"$ref": "#/definitions/Address"},
            "latitude": {"type": "number"}, "longitude": {"type": "number"},
            "date": {"type": "string"}, "time_slot": {"type": "string"}, "waste_type": {"type": "string"},
            "status": {"type": "string", "enum": ["PENDING", "Paid - Pending Pickup"]}
        }},
        "Pickup": {"type": "object", "properties": {
            "id": {"type": "string"}, "requester_id": {"type": "string"}, "contact_name": {"type": "string"},
            "contact_phone": {"type": "string"}, "address": {"$ref": "#/definitions/Address"},
            "date": {"type": "string"}, "time_slot": {"type": "string"}, "waste_type": {"type": "string"},
            "status": {"type": "string"}, "tracking_status": {"type": "string"},
            "assigned_worker_id": {"type": "string"}, "weight_kg": {"type": "number"},
            "brand": {"type": "string"}, "item_details": {"type": "string"}, "estimated_value": {"type": "number"},
            "reschedule_reason": {"type": "string"}
        }},
        "WorkerRef": {"type": "object", "properties": {"worker_id": {"type": "string"}}},
        "StatusReport": {"type": "object", "properties": {
            "worker_id": {"type": "string"}, "status": {"type": "string"}, "collected_kg": {"type": "number"},
            "notes": {"type": "string"}, "brand": {"type": "string"}, "item_details": {"type": "string"},
            "estimated_value": {"type": "number"}
        }},
        "RescheduleRequest": {"type": "object", "properties": {
            "worker_id": {"type": "string"}, "new_date": {"type": "string"}, "reason": {"type": "string"}
        }},
        "AutoAssignment": {"type": "object", "properties": {
            "assigned": {"type": "boolean"}, "worker_id": {"type": "string"}, "distance_km": {"type": "number"},
            "capacity_fallback": {"type": "boolean"}, "trace": {"type": "array", "items": {"type": "string"}},
            "pickup": {"$ref": "#/definitions/Pickup"}
        }},
        "BulkAssignment": {"type": "object", "properties": {
            "total_unassigned": {"type": "integer"}, "assigned_count": {"type": "integer"}
        }},
        "NewWorker": {"type": "object", "properties": {
            "username": {"type": "string"}, "full_name": {"type": "string"}, "phone": {"type": "string"},
            "email": {"type": "string"}, "address": {"$ref": "#/definitions/Address"},
            "latitude": {"type": "number"}, "longitude": {"type": "number"}, "available": {"type": "boolean"}
        }},
        "Worker": {"type": "object", "properties": {
            "id": {"type": "string"}, "username": {"type": "string"}, "full_name": {"type": "string"},
            "phone": {"type": "string"}, "address": {"$ref": "#/definitions/Address"},
            "available": {"type": "boolean"}, "distance_km": {"type": "number"}
        }},
        "WorkerLoad": {"type": "object", "properties": {
            "worker_id": {"type": "string"}, "assignment_count": {"type": "integer"},
            "max_assignments": {"type": "integer"}, "is_available": {"type": "boolean"}, "on_duty": {"type": "boolean"}
        }},
        "Log": {"type": "object", "properties": {
            "id": {"type": "string"}, "request_id": {"type": "string"}, "worker_id": {"type": "string"},
            "old_status": {"type": "string"}, "new_status": {"type": "string"},
            "timestamp": {"type": "string", "format": "date-time"},
            "collected_kg": {"type": "number"}, "notes": {"type": "string"}
        }}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "E-waste pickup API",
	Description:      "Pickup requests, worker assignment and collection lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
