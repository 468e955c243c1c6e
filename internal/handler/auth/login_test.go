package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"user-admin/internal/api"
	"user-admin/internal/cache"
	"user-admin/internal/database"
	"user-admin/internal/middleware"
	"user-admin/internal/model"
	"user-admin/internal/service"
	"user-admin/internal/store"
	"user-admin/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newJSONCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

// syncPool 立即在呼叫端執行工作
type syncPool struct {
	mu    sync.Mutex
	tasks int
}

func (p *syncPool) Submit(t worker.Task) bool {
	p.mu.Lock()
	p.tasks++
	p.mu.Unlock()
	_ = t(context.Background())
	return true
}

func (p *syncPool) Stop() {}

func restore() {
	login = service.Login
	renewToken = service.RenewToken
	logout = service.Logout
	touchLatestActive = store.TouchLatestActive
	timeNow = time.Now
}

var tokens = service.NewTokenService("s", time.Hour, 24*time.Hour)

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restore)

	// bind error
	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec := newJSONCtx(e, http.MethodPost, "")
	require.NoError(t, LoginHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens, &syncPool{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = errValidator{}
	ctx, rec = newJSONCtx(e, http.MethodPost, `{"login_id":"a"}`)
	require.NoError(t, LoginHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens, &syncPool{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	e = echo.New()
	e.Validator = okValidator{}
	for _, tc := range []struct {
		err  error
		want string
	}{
		{service.ErrUnjoinedAccount, "unjoined account"},
		{service.ErrUnknownUser, "unknown user"},
		{service.ErrInvalidPassword, "invalid password"},
	} {
		login = func(context.Context, database.DB, cache.Cache, *service.TokenService, api.LoginRequest) (*service.LoginResult, error) {
			return nil, tc.err
		}
		pool := &syncPool{}
		ctx, rec = newJSONCtx(e, http.MethodPost, `{"login_id":"a","password":"b"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens, pool)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), tc.want)
		require.Zero(t, pool.tasks)
	}

	// success
	at := time.Unix(1_700_000_000, 0)
	timeNow = func() time.Time { return at }
	var gotReq api.LoginRequest
	login = func(_ context.Context, _ database.DB, _ cache.Cache, _ *service.TokenService, req api.LoginRequest) (*service.LoginResult, error) {
		gotReq = req
		return &service.LoginResult{User: &model.User{ID: 4}, AccessToken: "acc", RefreshToken: "ref"}, nil
	}
	var touchedID int
	var touchedAt time.Time
	touchLatestActive = func(_ context.Context, _ database.DB, id int, t time.Time) error {
		touchedID, touchedAt = id, t
		return nil
	}
	pool := &syncPool{}
	ctx, rec = newJSONCtx(e, http.MethodPost, `{"login_id":"alice1","password":"pw"}`)
	require.NoError(t, LoginHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens, pool)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice1", gotReq.LoginID)
	require.JSONEq(t, `{"access_token":"acc","refresh_token":"ref","token_type":"Bearer","expires_in":3600}`, rec.Body.String())
	require.Equal(t, 1, pool.tasks)
	require.Equal(t, 4, touchedID)
	require.Equal(t, at, touchedAt)
}

func TestRenewTokenHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	ctx, _ := newJSONCtx(e, http.MethodGet, "")
	err := RenewTokenHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens)(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)

	renewToken = func(context.Context, database.DB, cache.Cache, *service.TokenService, string) (*service.LoginResult, error) {
		return nil, service.ErrUnauthorized
	}
	ctx, rec := newJSONCtx(e, http.MethodGet, "")
	ctx.Request().Header.Set("Authorization", "Bearer old")
	require.NoError(t, RenewTokenHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var gotToken string
	renewToken = func(_ context.Context, _ database.DB, _ cache.Cache, _ *service.TokenService, tok string) (*service.LoginResult, error) {
		gotToken = tok
		return &service.LoginResult{User: &model.User{ID: 1}, AccessToken: "acc2", RefreshToken: "ref2"}, nil
	}
	ctx, rec = newJSONCtx(e, http.MethodGet, "")
	ctx.Request().Header.Set("Authorization", "Bearer ref1")
	require.NoError(t, RenewTokenHandler(&database.FakeDB{}, &cache.FakeCache{}, tokens)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ref1", gotToken)
	require.Contains(t, rec.Body.String(), `"refresh_token":"ref2"`)
}

func TestLogoutHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	ctx, rec := newJSONCtx(e, http.MethodDelete, "")
	require.NoError(t, LogoutHandler(&cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var gotID int
	logout = func(_ context.Context, _ cache.Cache, id int) error { gotID = id; return nil }
	ctx, rec = newJSONCtx(e, http.MethodDelete, "")
	ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 6})
	require.NoError(t, LogoutHandler(&cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 6, gotID)

	logout = func(context.Context, cache.Cache, int) error { return errors.New("redis") }
	ctx, _ = newJSONCtx(e, http.MethodDelete, "")
	ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 6})
	require.Error(t, LogoutHandler(&cache.FakeCache{})(ctx))
}
