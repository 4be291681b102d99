package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/phrazzld/tasknest-api/internal/api/shared"
)

// OpenAPI serves the OpenAPI 3 description of the HTTP API. The document
// is built on first request and reused afterwards.
type OpenAPI struct {
	once sync.Once
	doc  []byte
	err  error
}

// Document returns the encoded document, building it once.
func (o *OpenAPI) Document() ([]byte, error) {
	o.once.Do(func() {
		o.doc, o.err = json.Marshal(buildOpenAPIDocument())
	})
	return o.doc, o.err
}

// ServeHTTP handles GET /openapi.json.
func (o *OpenAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	doc, err := o.Document()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgUnexpected, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

type object = map[string]interface{}

var bearerSecurity = []object{{"bearerAuth": []string{}}}

func ref(name string) object {
	return object{"$ref": "#/components/schemas/" + name}
}

func jsonBody(schema object) object {
	return object{
		"required": true,
		"content":  object{"application/json": object{"schema": schema}},
	}
}

func jsonResponse(description string, schema object) object {
	return object{
		"description": description,
		"content":     object{"application/json": object{"schema": schema}},
	}
}

func idParam(description string) []object {
	return []object{{
		"name":        "id",
		"in":          "path",
		"required":    true,
		"description": description,
		"schema":      object{"type": "string", "format": "uuid"},
	}}
}

func operation(summary string, protected bool, responses object, extra object) object {
	op := object{"summary": summary, "responses": responses}
	if protected {
		op["security"] = bearerSecurity
	}
	for k, v := range extra {
		op[k] = v
	}
	return op
}

func errorResponses(codes ...string) object {
	out := object{}
	for _, c := range codes {
		out[c] = jsonResponse("Error", ref("Error"))
	}
	return out
}

func withOK(desc string, schema object, errs object) object {
	errs["200"] = jsonResponse(desc, schema)
	return errs
}

func buildOpenAPIDocument() object {
	taskSchema := object{
		"type": "object",
		"properties": object{
			"id":          object{"type": "string", "format": "uuid"},
			"title":       object{"type": "string"},
			"description": object{"type": "string", "nullable": true},
			"due_date":    object{"type": "string", "format": "date-time", "nullable": true},
			"priority":    object{"type": "integer", "minimum": 1, "maximum": 5},
			"status":      object{"type": "boolean"},
			"user_id":     object{"type": "string", "format": "uuid"},
			"category_id": object{"type": "string", "format": "uuid", "nullable": true},
			"created_at":  object{"type": "string", "format": "date-time"},
			"updated_at":  object{"type": "string", "format": "date-time"},
		},
	}
	taskInput := object{
		"type":     "object",
		"required": []string{"title"},
		"properties": object{
			"title":       object{"type": "string"},
			"description": object{"type": "string", "nullable": true},
			"due_date":    object{"type": "string", "format": "date-time", "nullable": true},
			"priority":    object{"type": "integer", "minimum": 1, "maximum": 5, "default": 1},
			"status":      object{"type": "boolean", "default": false},
			"category_id": object{"type": "string", "format": "uuid", "nullable": true},
		},
	}
	categorySchema := object{
		"type": "object",
		"properties": object{
			"id":      object{"type": "string", "format": "uuid"},
			"name":    object{"type": "string"},
			"user_id": object{"type": "string", "format": "uuid"},
		},
	}
	credentials := object{
		"type":     "object",
		"required": []string{"email", "password"},
		"properties": object{
			"email":    object{"type": "string"},
			"password": object{"type": "string", "minLength": 6},
		},
	}
	message := object{"type": "object", "properties": object{"message": object{"type": "string"}}}
	tasks := object{"type": "object", "properties": object{"tasks": object{"type": "array", "items": ref("Task")}}}
	taskWithMessage := object{"type": "object", "properties": object{"message": object{"type": "string"}, "task": ref("Task")}}

	return object{
		"openapi": "3.0.3",
		"info": object{
			"title":       "TaskNest API",
			"version":     "1.0.0",
			"description": "Task management with per-user tasks and categories.",
		},
		"components": object{
			"securitySchemes": object{
				"bearerAuth": object{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
			"schemas": object{
				"Task":        taskSchema,
				"TaskInput":   taskInput,
				"Category":    categorySchema,
				"Credentials": credentials,
				"Message":     message,
				"Notification": object{
					"type": "object",
					"properties": object{
						"user_id":   object{"type": "string", "format": "uuid"},
						"task_id":   object{"type": "string", "format": "uuid"},
						"message":   object{"type": "string"},
						"timestamp": object{"type": "string", "description": "Due date (RFC 3339) or \"No due date\""},
					},
				},
				"Error": object{
					"type": "object",
					"properties": object{
						"detail":   object{"type": "string"},
						"trace_id": object{"type": "string"},
					},
				},
			},
		},
		"paths": object{
			"/users/register": object{
				"post": operation("Register a user", false,
					withOK("User created", ref("Message"), errorResponses("400")),
					object{"requestBody": jsonBody(ref("Credentials"))}),
			},
			"/users/login": object{
				"post": operation("Log in", false,
					withOK("Access token", object{
						"type": "object",
						"properties": object{
							"access_token": object{"type": "string"},
							"token_type":   object{"type": "string", "example": "bearer"},
						},
					}, errorResponses("400")),
					object{"requestBody": jsonBody(ref("Credentials"))}),
			},
			"/users/{id}/tasks": object{
				"get": operation("List a user's tasks", false,
					withOK("Tasks", tasks, errorResponses("400", "404")),
					object{"parameters": idParam("User ID")}),
			},
			"/tasks/": object{
				"post": operation("Create a task", true,
					withOK("Task created", taskWithMessage, errorResponses("400", "401", "403")),
					object{"requestBody": jsonBody(ref("TaskInput"))}),
				"get": operation("List my tasks", true,
					withOK("Tasks", tasks, errorResponses("401", "403", "404")), nil),
			},
			"/tasks/{id}": object{
				"put": operation("Update a task", true,
					withOK("Task updated", taskWithMessage, errorResponses("400", "401", "403", "404")),
					object{"parameters": idParam("Task ID"), "requestBody": jsonBody(ref("TaskInput"))}),
				"delete": operation("Delete a task", true,
					withOK("Task deleted", ref("Message"), errorResponses("400", "401", "403", "404")),
					object{"parameters": idParam("Task ID")}),
			},
			"/categories/": object{
				"post": operation("Create a category", true,
					withOK("Category created", object{
						"type": "object",
						"properties": object{
							"message":  object{"type": "string"},
							"category": ref("Category"),
						},
					}, errorResponses("400", "401", "403")),
					object{"requestBody": jsonBody(object{
						"type":       "object",
						"required":   []string{"name"},
						"properties": object{"name": object{"type": "string"}},
					})}),
				"get": operation("List my categories", true,
					withOK("Categories", object{
						"type": "object",
						"properties": object{
							"categories": object{"type": "array", "items": ref("Category")},
						},
					}, errorResponses("401", "403", "404")), nil),
			},
			"/categories/{id}/tasks": object{
				"get": operation("List tasks in a category", true,
					withOK("Tasks of the category", object{
						"type": "object",
						"properties": object{
							"category": object{"type": "string"},
							"tasks":    object{"type": "array", "items": ref("Task")},
						},
					}, errorResponses("400", "401", "403", "404")),
					object{"parameters": idParam("Category ID")}),
			},
			"/notifications/": object{
				"get": operation("List my recent task notifications", true,
					withOK("Notifications, newest first", object{
						"type": "object",
						"properties": object{
							"notifications": object{"type": "array", "items": ref("Notification")},
						},
					}, errorResponses("400", "401", "403")),
					object{"parameters": []object{{
						"name":   "limit",
						"in":     "query",
						"schema": object{"type": "integer", "minimum": 1},
					}}}),
			},
		},
	}
}
