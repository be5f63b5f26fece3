package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the candies API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>candies — Swagger</title>
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

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "candies", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Candy": { "type": "object", "properties": { "_id": {"type":"string"}, "name": {"type":"string"}, "color": {"type":"string"} } },
      "CandyInput": { "type": "object", "properties": { "name": {"type":"string","maxLength":200}, "color": {"type":"string","maxLength":200} } },
      "Message": { "type": "object", "properties": { "message": {"type":"string"} } }
    }
  },
  "paths": {
    "/candies": {
      "get": { "summary": "List candies (HTML page, or JSON with Accept: application/json)", "responses": { "200": { "description": "index page or array of candies" } } },
      "post": { "summary": "Create a candy", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/CandyInput"} }, "application/x-www-form-urlencoded": { "schema": {"$ref":"#/components/schemas/CandyInput"} } } }, "responses": { "200": { "description": "created candy or store error message" }, "400": { "description": "malformed input" } } }
    },
    "/candies/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} } ],
      "get": { "summary": "Get one candy", "responses": { "200": { "description": "{candy: <record or null>}" } } },
      "put": { "summary": "Update a candy (alias of PATCH)", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/CandyInput"} } } }, "responses": { "200": { "description": "Candy successfully updated" }, "400": { "description": "malformed input" }, "404": { "description": "unknown id" } } },
      "patch": { "summary": "Update the supplied fields of a candy", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/CandyInput"} } } }, "responses": { "200": { "description": "Candy successfully updated" }, "400": { "description": "malformed input" }, "404": { "description": "unknown id" } } },
      "delete": { "summary": "Delete a candy", "responses": { "200": { "description": "Candy successfully deleted" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
