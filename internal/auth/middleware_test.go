package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmtable/sheet-api/internal/auth"
	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
)

type stubResolver struct {
	user *entities.User
	err  error

	gotTG *auth.TelegramUser
}

func (s *stubResolver) ResolveUser(_ context.Context, tg *auth.TelegramUser) (*entities.User, error) {
	s.gotTG = tg
	return s.user, s.err
}

func newAuthRouter(cfg auth.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.Middleware(cfg))
	r.GET("/me", func(c *gin.Context) {
		user, ok := auth.UserFrom(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return r
}

func TestMiddleware_Authenticates(t *testing.T) {
	resolver := &stubResolver{user: &entities.User{ID: 42, Username: "brave_knight"}}
	router := newAuthRouter(auth.Config{BotToken: testBotToken, Resolver: resolver})

	initData := signInitData(t, testBotToken, map[string]string{
		"user": `{"id":42,"username":"brave_knight"}`,
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(auth.Header, initData)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resolver.gotTG)
	assert.Equal(t, int64(42), resolver.gotTG.ID)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	router := newAuthRouter(auth.Config{BotToken: testBotToken, Resolver: &stubResolver{}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_BadSignature(t *testing.T) {
	router := newAuthRouter(auth.Config{BotToken: testBotToken, Resolver: &stubResolver{}})

	initData := signInitData(t, "other:token", map[string]string{
		"user": `{"id":42}`,
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(auth.Header, initData)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_ResolverFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.Internal("redis down")}
	router := newAuthRouter(auth.Config{BotToken: testBotToken, Resolver: resolver})

	initData := signInitData(t, testBotToken, map[string]string{
		"user": `{"id":42}`,
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(auth.Header, initData)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMiddleware_DisabledSkipsSignature(t *testing.T) {
	resolver := &stubResolver{user: &entities.User{ID: 7}}
	router := newAuthRouter(auth.Config{Disabled: true, Resolver: resolver})

	values := url.Values{}
	values.Set("user", `{"id":7,"first_name":"Dev"}`)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(auth.Header, values.Encode())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resolver.gotTG)
	assert.Equal(t, int64(7), resolver.gotTG.ID)
}
