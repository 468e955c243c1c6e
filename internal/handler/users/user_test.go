package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-admin/internal/api"
	"user-admin/internal/database"
	"user-admin/internal/middleware"
	"user-admin/internal/model"
	"user-admin/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

type apiValidator struct{ v *validator.Validate }

func (a apiValidator) Validate(i interface{}) error { return a.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = apiValidator{v: api.NewValidator()}
	return e
}

// newCtx 建立帶 JSON body、路徑參數與登入者的 context
func newCtx(e *echo.Echo, method, target, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetPath("/users/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 1})
	return c, rec
}

func restore() {
	createUser = service.CreateUser
	getUser = service.GetUser
	listUsers = service.ListUsers
	updateUser = service.UpdateUser
	changePassword = service.ChangePassword
	deleteUser = service.DeleteUser
	checkLoginID = service.CheckLoginID
}

func sampleUser() *model.User {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return &model.User{
		ID:          7,
		LoginID:     "alice1",
		Name:        "Alice",
		Role:        model.UserTypeAdmin,
		UseFlag:     true,
		Authorities: []model.Authority{model.AuthorityUserView},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

const validUserBody = `{"login_id":"alice1","name":"Alice","role":"ADMIN","use_flag":true,"authorities":["USER_VIEW"]}`

func TestCreateUserHandler(t *testing.T) {
	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		c, rec := newCtx(newEcho(), http.MethodPost, "/users", "", "{bad")
		require.NoError(t, CreateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		c, rec := newCtx(newEcho(), http.MethodPost, "/users", "", validUserBody)
		require.NoError(t, CreateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate login id", func(t *testing.T) {
		t.Cleanup(restore)
		createUser = func(context.Context, database.DB, api.CreateUserRequest, int) (*model.User, error) {
			return nil, service.ErrAlreadyJoinedAccount
		}
		body := strings.Replace(validUserBody, `"name"`, `"password":"pw","name"`, 1)
		c, rec := newCtx(newEcho(), http.MethodPost, "/users", "", body)
		require.NoError(t, CreateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "already joined account")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		var got api.CreateUserRequest
		var gotOperator int
		createUser = func(_ context.Context, _ database.DB, req api.CreateUserRequest, op int) (*model.User, error) {
			got, gotOperator = req, op
			return sampleUser(), nil
		}
		body := strings.Replace(validUserBody, `"name"`, `"password":"pw","name"`, 1)
		c, rec := newCtx(newEcho(), http.MethodPost, "/users", "", body)
		require.NoError(t, CreateUserHandler(nil)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "pw", got.Password)
		require.Equal(t, 1, gotOperator)
		require.Contains(t, rec.Body.String(), `"login_id":"alice1"`)
		require.NotContains(t, rec.Body.String(), "password")
	})
}

func TestGetUserHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()

	c, rec := newCtx(e, http.MethodGet, "/users/x", "x", "")
	require.NoError(t, GetUserHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	getUser = func(context.Context, database.DB, int) (*model.User, error) { return nil, service.ErrUnknownUser }
	c, rec = newCtx(e, http.MethodGet, "/users/9", "9", "")
	require.NoError(t, GetUserHandler(nil)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	getUser = func(context.Context, database.DB, int) (*model.User, error) { return nil, errors.New("db") }
	c, _ = newCtx(e, http.MethodGet, "/users/9", "9", "")
	err := GetUserHandler(nil)(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusInternalServerError, he.Code)

	getUser = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		require.Equal(t, 7, id)
		return sampleUser(), nil
	}
	c, rec = newCtx(e, http.MethodGet, "/users/7", "7", "")
	require.NoError(t, GetUserHandler(nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"authorities":["USER_VIEW"]`)
}

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()

	var got api.ListUsersRequest
	listUsers = func(_ context.Context, _ database.DB, req api.ListUsersRequest) (api.ListResult[api.UserResponse], error) {
		got = req
		return api.ListResult[api.UserResponse]{Page: req.Page, PageSize: req.PageSize, Total: 1,
			Items: []api.UserResponse{api.NewUserResponse(sampleUser())}}, nil
	}

	c, rec := newCtx(e, http.MethodGet, "/users", "", "")
	require.NoError(t, ListUsersHandler(nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, got.Page)
	require.Equal(t, 10, got.PageSize)
	require.Nil(t, got.Name)
	require.Contains(t, rec.Body.String(), `"total":1`)

	c, rec = newCtx(e, http.MethodGet, "/users?id=3&login_id=ali&name=Al&use_flag=false&page=2&page_size=5", "", "")
	require.NoError(t, ListUsersHandler(nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, *got.ID)
	require.Equal(t, "ali", *got.LoginID)
	require.Equal(t, "Al", *got.Name)
	require.False(t, *got.UseFlag)
	require.Equal(t, 2, got.Page)
	require.Equal(t, 5, got.PageSize)

	for _, q := range []string{"id=x", "use_flag=maybe", "page=x", "page_size=0", "page_size=1000", "page=0"} {
		c, rec = newCtx(e, http.MethodGet, "/users?"+q, "", "")
		require.NoError(t, ListUsersHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestUpdateUserHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()

	var got api.UpdateUserRequest
	var gotID, gotOperator int
	updateUser = func(_ context.Context, _ database.DB, id int, req api.UpdateUserRequest, op int) (*model.User, error) {
		got, gotID, gotOperator = req, id, op
		return sampleUser(), nil
	}

	t.Run("invalid id", func(t *testing.T) {
		c, rec := newCtx(e, http.MethodPut, "/users/0", "0", validUserBody)
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("without password", func(t *testing.T) {
		c, rec := newCtx(e, http.MethodPut, "/users/7", "7", validUserBody)
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 7, gotID)
		require.Equal(t, 1, gotOperator)
		require.False(t, got.HasPassword())
		require.Equal(t, model.UserTypeAdmin, got.Role)
	})

	t.Run("with password", func(t *testing.T) {
		body := strings.Replace(validUserBody, `"name"`, `"password":"s3cret","name"`, 1)
		c, rec := newCtx(e, http.MethodPut, "/users/7", "7", body)
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, got.HasPassword())
		require.Equal(t, "s3cret", *got.Password)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		body := strings.Replace(validUserBody, `"name"`, `"password":"","name"`, 1)
		c, rec := newCtx(e, http.MethodPut, "/users/7", "7", body)
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown authority", func(t *testing.T) {
		body := strings.Replace(validUserBody, "USER_VIEW", "ROOT", 1)
		c, rec := newCtx(e, http.MethodPut, "/users/7", "7", body)
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "authorities")
	})

	t.Run("bind error", func(t *testing.T) {
		c, rec := newCtx(e, http.MethodPut, "/users/7", "7", "{")
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		updateUser = func(context.Context, database.DB, int, api.UpdateUserRequest, int) (*model.User, error) {
			return nil, service.ErrUnknownUser
		}
		c, rec := newCtx(e, http.MethodPut, "/users/7", "7", validUserBody)
		require.NoError(t, UpdateUserHandler(nil)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "unknown user")
	})
}

func TestChangePasswordHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()

	c, rec := newCtx(e, http.MethodPatch, "/users/7/password", "7", `{"old_password":"a","new_password":"short"}`)
	require.NoError(t, ChangePasswordHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	changePassword = func(context.Context, database.DB, int, api.ChangePasswordRequest, int) (*model.User, error) {
		return nil, service.ErrSamePassword
	}
	c, rec = newCtx(e, http.MethodPatch, "/users/7/password", "7", `{"old_password":"oldpass1","new_password":"oldpass1"}`)
	require.NoError(t, ChangePasswordHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "same password")

	changePassword = func(_ context.Context, _ database.DB, id int, req api.ChangePasswordRequest, _ int) (*model.User, error) {
		require.Equal(t, "newpass1", req.NewPassword)
		return sampleUser(), nil
	}
	c, rec = newCtx(e, http.MethodPatch, "/users/7/password", "7", `{"old_password":"oldpass1","new_password":"newpass1"}`)
	require.NoError(t, ChangePasswordHandler(nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()

	deleteUser = func(_ context.Context, _ database.DB, id, op int) error {
		if id == op {
			return service.ErrCannotRemoveYourself
		}
		return nil
	}

	c, rec := newCtx(e, http.MethodDelete, "/users/1", "1", "")
	require.NoError(t, DeleteUserHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "cannot remove yourself")

	c, rec = newCtx(e, http.MethodDelete, "/users/2", "2", "")
	require.NoError(t, DeleteUserHandler(nil)(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newCtx(e, http.MethodDelete, "/users/abc", "abc", "")
	require.NoError(t, DeleteUserHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckLoginIDHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()
	e.Validator = &stubValidator{}

	c, rec := newCtx(e, http.MethodGet, "/users/check-login-id", "", "")
	require.NoError(t, CheckLoginIDHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newCtx(e, http.MethodGet, "/users/check-login-id?login_id=a&user_id=x", "", "")
	require.NoError(t, CheckLoginIDHandler(nil)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var gotExclude *int
	checkLoginID = func(_ context.Context, _ database.DB, loginID string, exclude *int) (bool, error) {
		require.Equal(t, "alice1", loginID)
		gotExclude = exclude
		return true, nil
	}
	c, rec = newCtx(e, http.MethodGet, "/users/check-login-id?login_id=alice1&user_id=4", "", "")
	require.NoError(t, CheckLoginIDHandler(nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "true\n", rec.Body.String())
	require.Equal(t, 4, *gotExclude)
}
