// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/app/main.go -o internal/docs --parseInternal
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
		"/api/v1/admin/content/reload": {
			"post": {
				"summary": "Reload content",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/admin/escrow/sweep": {
			"post": {
				"summary": "Auto-confirm stale escrow",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			}
		},
		"/api/v1/admin/outbox/drain": {
			"post": {
				"summary": "Drain sync outbox",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			}
		},
		"/api/v1/admin/recurring/reset": {
			"post": {
				"summary": "Reset recurring tasks",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Reset as of YYYY-MM-DD",
						"name": "date",
						"in": "query",
						"required": false,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/api/v1/admin/streaks/check": {
			"post": {
				"summary": "Check streaks",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/bonds": {
			"post": {
				"summary": "Create bond",
				"tags": [
					"bonds"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Bond members",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateBondRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/bundles": {
			"post": {
				"summary": "Create routine bundle",
				"tags": [
					"tasks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Bundle definition",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateBundleRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/api/v1/characters": {
			"post": {
				"summary": "Create character",
				"tags": [
					"characters"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Name and class",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateCharacterRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/api/v1/characters/{id}": {
			"get": {
				"summary": "Get character",
				"tags": [
					"characters"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/api/v1/characters/{id}/buffs": {
			"post": {
				"summary": "Activate a buff",
				"tags": [
					"characters"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Buff kind",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ActivateBuffRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/characters/{id}/equipment/{itemID}/enhance": {
			"post": {
				"summary": "Enhance equipment",
				"tags": [
					"equipment"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Item ID",
						"name": "itemID",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/characters/{id}/equipment/{itemID}/equip": {
			"post": {
				"summary": "Equip or unequip an item",
				"tags": [
					"equipment"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Item ID",
						"name": "itemID",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Equip flag",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.EquipRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/api/v1/characters/{id}/equipment/{itemID}/salvage": {
			"post": {
				"summary": "Salvage equipment",
				"tags": [
					"equipment"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Item ID",
						"name": "itemID",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/api/v1/characters/{id}/events": {
			"get": {
				"summary": "Event history",
				"tags": [
					"journal"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Maximum events",
						"name": "limit",
						"in": "query",
						"required": false,
						"type": "integer"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/api/v1/characters/{id}/mission": {
			"get": {
				"summary": "Check mission",
				"description": "Answers 202 while the mission is still running",
				"tags": [
					"missions"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"202": {
						"description": "Accepted"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/api/v1/characters/{id}/missions": {
			"post": {
				"summary": "Start mission",
				"tags": [
					"missions"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Mission to start",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.StartMissionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/characters/{id}/research": {
			"post": {
				"summary": "Purchase research",
				"tags": [
					"research"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Research node",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.PurchaseResearchRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/characters/{id}/stats": {
			"post": {
				"summary": "Spend a stat point",
				"tags": [
					"characters"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Stat to raise",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.SpendStatRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/characters/{id}/tasks": {
			"get": {
				"summary": "List a character's tasks",
				"tags": [
					"tasks"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Character ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/content/dungeons": {
			"get": {
				"summary": "Dungeon catalog",
				"tags": [
					"content"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/content/missions": {
			"get": {
				"summary": "Mission catalog",
				"tags": [
					"content"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/dungeons/runs": {
			"post": {
				"summary": "Start dungeon run",
				"tags": [
					"dungeons"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Dungeon, party and approach",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.StartDungeonRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/dungeons/runs/{id}": {
			"get": {
				"summary": "Get dungeon run",
				"tags": [
					"dungeons"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Run ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/api/v1/dungeons/runs/{id}/resolve": {
			"post": {
				"summary": "Resolve dungeon run",
				"tags": [
					"dungeons"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Run ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/api/v1/missions/active": {
			"get": {
				"summary": "List running missions",
				"tags": [
					"missions"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/tasks": {
			"post": {
				"summary": "Create task",
				"tags": [
					"tasks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Task definition",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateTaskRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/api/v1/tasks/{id}/complete": {
			"post": {
				"summary": "Complete task",
				"description": "Partner-assigned tasks are held in escrow and answer 202 until the partner confirms",
				"tags": [
					"tasks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Actor and verification signals",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CompleteTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"202": {
						"description": "Accepted"
					},
					"404": {
						"description": "Not Found"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/tasks/{id}/confirm": {
			"post": {
				"summary": "Confirm escrowed task",
				"tags": [
					"tasks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Confirming partner",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ConfirmTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/api/v1/tasks/{id}/dispute": {
			"post": {
				"summary": "Dispute escrowed task",
				"tags": [
					"tasks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "Disputing partner and reason",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.DisputeTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/healthz": {
			"get": {
				"summary": "Liveness check",
				"tags": [
					"health"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"summary": "Readiness check",
				"tags": [
					"health"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"503": {
						"description": "Service Unavailable"
					}
				}
			}
		},
		"/version": {
			"get": {
				"summary": "Build version",
				"tags": [
					"health"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"definitions": {
		"handler.ActivateBuffRequest": {
			"type": "object",
			"properties": {
				"kind": {
					"type": "string"
				}
			},
			"required": [
				"kind"
			]
		},
		"handler.CompleteTaskRequest": {
			"type": "object",
			"properties": {
				"actor_id": {
					"type": "string"
				},
				"signals": {
					"type": "object"
				}
			}
		},
		"handler.ConfirmTaskRequest": {
			"type": "object",
			"properties": {
				"confirmer_id": {
					"type": "string"
				}
			},
			"required": [
				"confirmer_id"
			]
		},
		"handler.CountResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"handler.CreateBondRequest": {
			"type": "object",
			"properties": {
				"member_ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			},
			"required": [
				"member_ids"
			]
		},
		"handler.CreateBundleRequest": {
			"type": "object",
			"properties": {
				"owner_id": {
					"type": "string"
				},
				"theme": {
					"type": "string"
				},
				"task_ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"per_habit_exp": {
					"type": "integer"
				}
			},
			"required": [
				"owner_id",
				"theme",
				"task_ids"
			]
		},
		"handler.CreateCharacterRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"class": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"class"
			]
		},
		"handler.CreateTaskRequest": {
			"type": "object",
			"properties": {
				"owner_id": {
					"type": "string"
				},
				"assigned_by_id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"base_exp": {
					"type": "integer"
				},
				"base_gold": {
					"type": "integer"
				},
				"verification": {
					"type": "string"
				},
				"is_habit": {
					"type": "boolean"
				},
				"recurrence": {
					"type": "string"
				},
				"is_coop_duty": {
					"type": "boolean"
				}
			},
			"required": [
				"owner_id",
				"title",
				"category"
			]
		},
		"handler.DataResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"data": {
					"type": "object"
				}
			}
		},
		"handler.DisputeTaskRequest": {
			"type": "object",
			"properties": {
				"disputer_id": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				}
			},
			"required": [
				"disputer_id"
			]
		},
		"handler.EquipRequest": {
			"type": "object",
			"properties": {
				"equipped": {
					"type": "boolean"
				}
			}
		},
		"handler.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"checks": {
					"type": "object"
				}
			}
		},
		"handler.MissionCheckResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"resolution": {
					"type": "object"
				}
			}
		},
		"handler.PurchaseResearchRequest": {
			"type": "object",
			"properties": {
				"node": {
					"type": "string"
				}
			},
			"required": [
				"node"
			]
		},
		"handler.ResearchResponse": {
			"type": "object",
			"properties": {
				"node": {
					"type": "string"
				},
				"level": {
					"type": "integer"
				}
			}
		},
		"handler.SpendStatRequest": {
			"type": "object",
			"properties": {
				"stat": {
					"type": "string"
				}
			},
			"required": [
				"stat"
			]
		},
		"handler.StartDungeonRequest": {
			"type": "object",
			"properties": {
				"dungeon_id": {
					"type": "string"
				},
				"party_ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"approach": {
					"type": "string"
				},
				"resolve": {
					"type": "boolean"
				}
			},
			"required": [
				"dungeon_id",
				"party_ids"
			]
		},
		"handler.StartMissionRequest": {
			"type": "object",
			"properties": {
				"mission_id": {
					"type": "string"
				}
			},
			"required": [
				"mission_id"
			]
		},
		"handler.SuccessResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handler.ValidationErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"fields": {
					"type": "object"
				}
			}
		},
		"handler.VersionInfo": {
			"type": "object",
			"properties": {
				"version": {
					"type": "string"
				},
				"go_version": {
					"type": "string"
				},
				"build_time": {
					"type": "string"
				},
				"git_commit": {
					"type": "string"
				},
				"content_version": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "X-API-Key",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "QuestForge API",
	Description:      "Gamified real-world task tracking: characters, partner-verified tasks, missions and dungeon runs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
