// Package docs registra el documento OpenAPI que se sirve en /docs.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/medicines": {
            "get": {"tags": ["medicines"], "summary": "Listar el botiquín", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}},
            "post": {"tags": ["medicines"], "summary": "Agregar medicamento al botiquín", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / fecha inválida / regla inválida"}, "401": {"description": "unauthorized"}}}
        },
        "/medicines/{medicineID}": {
            "get": {"tags": ["medicines"], "summary": "Ver un medicamento", "parameters": [{"type": "string", "name": "medicineID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "medicine not found"}}},
            "delete": {"tags": ["medicines"], "summary": "Quitar un medicamento del botiquín", "parameters": [{"type": "string", "name": "medicineID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "medicine not found"}}}
        },
        "/medicines/{medicineID}/status": {
            "get": {"tags": ["medicines"], "summary": "Estado de vencimiento de un medicamento", "parameters": [{"type": "string", "name": "medicineID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "medicine not found"}}}
        },
        "/expiration/compute": {
            "post": {"tags": ["expiration"], "summary": "Calcular vencimiento efectivo", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "invalid date format / invalid expiration rule"}}}
        },
        "/expiration/rules": {
            "get": {"tags": ["expiration"], "summary": "Reglas post-apertura soportadas", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/members": {
            "get": {"tags": ["members"], "summary": "Listar integrantes del hogar", "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}},
            "post": {"tags": ["members"], "summary": "Agregar integrante de la familia", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}}}
        },
        "/members/{memberID}": {
            "get": {"tags": ["members"], "summary": "Ver integrante", "parameters": [{"type": "string", "name": "memberID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "member not found"}}},
            "delete": {"tags": ["members"], "summary": "Eliminar integrante", "parameters": [{"type": "string", "name": "memberID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "member not found"}}}
        },
        "/members/{memberID}/medications": {
            "post": {"tags": ["members"], "summary": "Agregar medicamento a un integrante", "parameters": [{"type": "string", "name": "memberID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "member not found"}}}
        },
        "/members/{memberID}/medications/{medicationID}": {
            "delete": {"tags": ["members"], "summary": "Quitar medicamento de un integrante", "parameters": [{"type": "string", "name": "memberID", "in": "path", "required": true}, {"type": "string", "name": "medicationID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "member not found / medication not found"}}}
        },
        "/reminders": {
            "get": {"tags": ["reminders"], "summary": "Listar recordatorios del hogar", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reminders"], "summary": "Crear recordatorio con control de stock", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input / invalid schedule"}}}
        },
        "/reminders/schedule": {
            "get": {"tags": ["reminders"], "summary": "Agenda del día por franja", "responses": {"200": {"description": "OK"}}}
        },
        "/reminders/refills": {
            "get": {"tags": ["reminders"], "summary": "Recordatorios que necesitan reposición", "responses": {"200": {"description": "OK"}}}
        },
        "/reminders/{reminderID}": {
            "get": {"tags": ["reminders"], "summary": "Ver recordatorio", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "reminder not found"}}},
            "delete": {"tags": ["reminders"], "summary": "Eliminar recordatorio", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "reminder not found"}}}
        },
        "/reminders/{reminderID}/take": {
            "post": {"tags": ["reminders"], "summary": "Marcar toma como tomada", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "reminder is out of stock"}}}
        },
        "/reminders/{reminderID}/restock": {
            "post": {"tags": ["reminders"], "summary": "Reponer stock", "parameters": [{"type": "string", "name": "reminderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "invalid input"}}}
        },
        "/dashboard": {
            "get": {"tags": ["dashboard"], "summary": "Resumen del hogar", "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Medicine Cabinet API",
	Description:      "Botiquín del hogar: vencimientos efectivos, familia y recordatorios con stock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
