// Package docs holds the OpenAPI description of the terroir HTTP API and
// serves it with Swagger UI. Regenerate with:
//
//	swag init -g cmd/terroir/main.go -d ./,internal/simulation,internal/server
package docs

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/swaggo/swag"
)

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
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/simulate": {
            "get": {
                "description": "Scores all regions and grapes against the given conditions. Omitted parameters take the default terroir (18°C, 600mm, 300m, Limestone).",
                "produces": ["application/json"],
                "tags": ["simulate"],
                "summary": "Simulate terroir",
                "parameters": [
                    {"type": "number", "default": 18, "description": "Growing-season temperature in °C", "name": "temperature", "in": "query"},
                    {"type": "number", "default": 600, "description": "Annual rainfall in mm", "name": "rainfall", "in": "query"},
                    {"type": "number", "default": 300, "description": "Altitude in meters", "name": "altitude", "in": "query"},
                    {"type": "string", "default": "Limestone", "description": "Soil label, the same field as soil_type in the POST body", "name": "soil_type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/simulation.SimulationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "post": {
                "description": "Scores all regions and grapes against a JSON body. Omitted fields take the default terroir.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["simulate"],
                "summary": "Simulate terroir",
                "parameters": [
                    {"description": "Terroir input", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TerroirInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/simulation.SimulationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/simulate/live": {
            "get": {
                "description": "WebSocket. Send TerroirInput JSON text messages; each is answered with a SimulationResponse.",
                "tags": ["simulate"],
                "summary": "Live simulation",
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/regions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List regions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/regions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get region",
                "parameters": [{"type": "string", "description": "Region id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Region"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/grapes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List grapes",
                "parameters": [{"type": "string", "description": "Filter by color (red, white, rosé)", "name": "color", "in": "query"}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/grapes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get grape",
                "parameters": [{"type": "string", "description": "Grape id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Grape"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/soils": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List soils",
                "description": "Suggested soil labels. The soil_type input accepts any free text; these are the labels offered to users.",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        }
    },
    "definitions": {
        "models.TerroirInput": {
            "type": "object",
            "properties": {
                "temperature": {"type": "number"},
                "rainfall": {"type": "number"},
                "altitude": {"type": "number"},
                "soil_type": {"type": "string"}
            }
        },
        "models.ClimateRange": {
            "type": "object",
            "properties": {
                "temperature": {"type": "array", "items": {"type": "number"}},
                "rainfall": {"type": "array", "items": {"type": "number"}},
                "altitude": {"type": "array", "items": {"type": "number"}},
                "soils": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.FlavorProfile": {
            "type": "object",
            "properties": {
                "acidity": {"type": "number"},
                "tannin": {"type": "number"},
                "body": {"type": "number"},
                "fruitiness": {"type": "number"},
                "earthiness": {"type": "number"}
            }
        },
        "models.Region": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "country": {"type": "string"},
                "state_or_province": {"type": "string"},
                "appellation": {"type": "string"},
                "climate": {"$ref": "#/definitions/models.ClimateRange"},
                "key_grapes": {"type": "array", "items": {"type": "string"}},
                "description": {"type": "string"}
            }
        },
        "models.Grape": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string", "enum": ["red", "white", "rosé"]},
                "typical_regions": {"type": "array", "items": {"type": "string"}},
                "preferred_climate": {"$ref": "#/definitions/models.ClimateRange"},
                "flavor_profile": {"$ref": "#/definitions/models.FlavorProfile"},
                "notes": {"type": "string"}
            }
        },
        "simulation.SimulationResponse": {
            "type": "object",
            "properties": {
                "input": {"$ref": "#/definitions/models.TerroirInput"},
                "matched_regions": {"type": "array", "items": {"type": "object", "properties": {"entity": {"$ref": "#/definitions/models.Region"}, "score": {"type": "number"}}}},
                "matched_grapes": {"type": "array", "items": {"type": "object", "properties": {"entity": {"$ref": "#/definitions/models.Grape"}, "score": {"type": "number"}}}},
                "derived_flavor_profile": {"$ref": "#/definitions/models.FlavorProfile"},
                "highlights": {"type": "object"}
            }
        },
        "server.Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "invalid_params": {"type": "array", "items": {"$ref": "#/definitions/server.InvalidParam"}}
            }
        },
        "server.InvalidParam": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "reason": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Terroir API",
	Description:      "Scores wine regions and grape varieties against a growing environment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Routes mounts Swagger UI and the OpenAPI document under /swagger/.
type Routes struct{}

// RegisterRoutes implements server.RouteRegistrar.
func (Routes) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
