package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the hosts API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		// the UI bundle is served from unpkg
		c.Header("Content-Security-Policy", swaggerCSP)
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data:"

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>hosts-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document for the hosts resource.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "hosts-api", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Host": { "type": "object", "required": ["id","name"], "properties": {
        "id": {"type":"string"}, "name": {"type":"string"},
        "documentId": {"type":"string","nullable":true},
        "phoneNumber": {"type":"string","nullable":true},
        "email": {"type":"string","format":"email","nullable":true} } },
      "HostInput": { "type": "object", "properties": {
        "name": {"type":"string"}, "documentId": {"type":"string"},
        "phoneNumber": {"type":"string"}, "email": {"type":"string","format":"email"} } },
      "ValidationError": { "type": "object", "properties": {
        "error": {"type":"string","example":"VALIDATION_ERROR"},
        "errors": {"type":"array","items":{"type":"object","properties":{
          "field":{"type":"string"},"message":{"type":"string"},"value":{},
          "location":{"type":"string","enum":["path","query","body"]}}}} } },
      "Error": { "type": "object", "properties": { "error": {"type":"string"} } }
    }
  },
  "paths": {
    "/hosts": {
      "get": {
        "summary": "List hosts",
        "parameters": [
          {"name":"limit","in":"query","schema":{"type":"integer","minimum":1,"maximum":100,"default":20}},
          {"name":"page","in":"query","schema":{"type":"integer","minimum":1,"default":1}}
        ],
        "responses": { "200": { "description": "page of hosts" }, "400": { "description": "invalid pagination" } }
      },
      "post": {
        "summary": "Create host",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/HostInput"} } } },
        "responses": { "201": { "description": "created" }, "400": { "description": "validation error" } }
      }
    },
    "/hosts/{id}": {
      "parameters": [ {"name":"id","in":"path","required":true,"schema":{"type":"string"}} ],
      "get": { "summary": "Get host", "responses": { "200": { "description": "host" }, "404": { "description": "not found" } } },
      "put": {
        "summary": "Update host (partial)",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/HostInput"} } } },
        "responses": { "200": { "description": "updated" }, "400": { "description": "validation error" }, "404": { "description": "not found" } }
      },
      "delete": { "summary": "Delete host", "responses": { "204": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "alive" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
