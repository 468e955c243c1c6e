// Package docs 註冊 API 文件，請求模型的欄位描述取自 api 套件的 Schema()
package docs

import (
	"encoding/json"
	"strings"

	"user-admin/internal/api"
	"user-admin/internal/model"

	"github.com/swaggo/swag"
)

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
        "/ping": {
            "get": {
                "tags": ["health"],
                "summary": "Health Check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PingResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["auth"],
                "summary": "登入使用者",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/renew-token": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["auth"],
                "summary": "換發令牌",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/logout": {
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["auth"],
                "summary": "登出",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users/check-login-id": {
            "get": {
                "tags": ["users"],
                "summary": "Check login id availability",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "login_id", "in": "query", "required": true},
                    {"type": "integer", "name": "user_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "boolean"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "query"},
                    {"type": "string", "name": "login_id", "in": "query"},
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "boolean", "name": "use_flag", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UserListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Create a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Get a user by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Update a user by ID",
                "description": "未帶 password 時保留原密碼",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user by ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/notices": {
            "get": {
                "tags": ["notices"],
                "summary": "List notices",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "query"},
                    {"type": "string", "name": "title", "in": "query"},
                    {"type": "boolean", "name": "use_flag", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.NoticeListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["notices"],
                "summary": "Create a notice",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.NoticeRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.NoticeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/notices/{id}": {
            "get": {
                "tags": ["notices"],
                "summary": "Get a notice by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.NoticeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["notices"],
                "summary": "Update a notice",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.NoticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.NoticeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["notices"],
                "summary": "Delete a notice",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/password": {
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Change a user's password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": @definitions@,
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo 文件基本資訊
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "User Admin API",
	Description:      "後台使用者管理 API 文件",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

type property struct {
	Type        string    `json:"type,omitempty"`
	Format      string    `json:"format,omitempty"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Items       *property `json:"items,omitempty"`
	Ref         string    `json:"$ref,omitempty"`
}

type definition struct {
	Type       string              `json:"type"`
	Required   []string            `json:"required,omitempty"`
	Properties map[string]property `json:"properties"`
}

var enums = map[string][]string{
	"role": {string(model.UserTypeAdmin), string(model.UserTypeUser)},
}

func authorityNames() []string {
	out := make([]string, 0, len(model.Authorities))
	for _, a := range model.Authorities {
		out = append(out, string(a))
	}
	return out
}

// fromSchema 將欄位描述轉為 swagger definition
func fromSchema(fields []api.FieldDoc) definition {
	d := definition{Type: "object", Properties: make(map[string]property, len(fields))}
	for _, f := range fields {
		p := property{Type: f.Type, Description: f.Description, Enum: enums[f.Name]}
		if f.Type == "array" {
			p.Items = &property{Type: "string", Enum: authorityNames()}
		}
		d.Properties[f.Name] = p
		if f.Required {
			d.Required = append(d.Required, f.Name)
		}
	}
	return d
}

func str(desc string) property { return property{Type: "string", Description: desc} }

func integer(desc string) property { return property{Type: "integer", Description: desc} }

func definitions() map[string]definition {
	userResponse := fromSchema([]api.FieldDoc{
		{Name: "id", Type: "integer", Description: "使用者 ID"},
		{Name: "login_id", Type: "string", Description: "登入帳號"},
		{Name: "name", Type: "string", Description: "使用者名稱"},
		{Name: "role", Type: "string", Description: "使用者類型"},
		{Name: "use_flag", Type: "boolean", Description: "是否啟用"},
		{Name: "authorities", Type: "array", Description: "權限列表"},
	})
	for _, name := range []string{"change_password_at", "latest_active_at", "joined_at", "created_at", "updated_at"} {
		userResponse.Properties[name] = property{Type: "string", Format: "date-time"}
	}
	userResponse.Properties["created_by"] = integer("")
	userResponse.Properties["updated_by"] = integer("")

	noticeResponse := fromSchema(api.NoticeRequest{}.Schema())
	noticeResponse.Required = nil
	noticeResponse.Properties["id"] = integer("公告 ID")
	for _, name := range []string{"created_at", "updated_at"} {
		noticeResponse.Properties[name] = property{Type: "string", Format: "date-time"}
	}
	noticeResponse.Properties["created_by"] = integer("")
	noticeResponse.Properties["updated_by"] = integer("")

	return map[string]definition{
		"api.CreateUserRequest": fromSchema(api.CreateUserRequest{}.Schema()),
		"api.UpdateUserRequest": fromSchema(api.UpdateUserRequest{}.Schema()),
		"api.UserResponse":      userResponse,
		"api.UserListResult": {Type: "object", Properties: map[string]property{
			"page":      integer("頁碼"),
			"page_size": integer("每頁筆數"),
			"total":     integer("總筆數"),
			"items":     {Type: "array", Items: &property{Ref: "#/definitions/api.UserResponse"}},
		}},
		"api.NoticeRequest":  fromSchema(api.NoticeRequest{}.Schema()),
		"api.NoticeResponse": noticeResponse,
		"api.NoticeListResult": {Type: "object", Properties: map[string]property{
			"page":      integer("頁碼"),
			"page_size": integer("每頁筆數"),
			"total":     integer("總筆數"),
			"items":     {Type: "array", Items: &property{Ref: "#/definitions/api.NoticeResponse"}},
		}},
		"api.LoginRequest": {Type: "object", Required: []string{"login_id", "password"}, Properties: map[string]property{
			"login_id": str("登入帳號"),
			"password": str("密碼"),
		}},
		"api.ChangePasswordRequest": {Type: "object", Required: []string{"old_password", "new_password"}, Properties: map[string]property{
			"old_password": str("目前密碼"),
			"new_password": str("新密碼，8 到 100 字元"),
		}},
		"api.TokenResponse": {Type: "object", Properties: map[string]property{
			"access_token":  str(""),
			"refresh_token": str(""),
			"token_type":    str(""),
			"expires_in":    integer("存取令牌有效秒數"),
		}},
		"api.ErrorResponse": {Type: "object", Properties: map[string]property{"message": str("錯誤描述")}},
		"PingResponse":      {Type: "object", Properties: map[string]property{"message": str("回應訊息")}},
	}
}

func init() {
	defs, err := json.Marshal(definitions())
	if err != nil {
		panic(err)
	}
	SwaggerInfo.SwaggerTemplate = strings.Replace(docTemplate, "@definitions@", string(defs), 1)
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
