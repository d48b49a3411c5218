package auth

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
)

// Header carries the raw init data on every API request.
const Header = "X-TG-INIT-DATA"

const contextUserKey = "auth.user"

// UserResolver upserts the Telegram identity into a stored user record.
type UserResolver interface {
	ResolveUser(ctx context.Context, tg *TelegramUser) (*entities.User, error)
}

// Config controls the middleware.
type Config struct {
	BotToken string

	// Disabled skips signature verification but still requires a parseable
	// user. Local development only.
	Disabled bool

	Resolver UserResolver
}

// Middleware authenticates every request from the init data header and
// stores the resolved user in the request context.
func Middleware(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		initData := c.GetHeader(Header)
		if initData == "" {
			abort(c, errors.Unauthenticated("missing init data header"))
			return
		}

		var (
			tg  *TelegramUser
			err error
		)
		if cfg.Disabled {
			tg, err = parseUnverified(initData)
		} else {
			tg, err = VerifyInitData(initData, cfg.BotToken)
		}
		if err != nil {
			abort(c, err)
			return
		}

		user, err := cfg.Resolver.ResolveUser(c.Request.Context(), tg)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to resolve user",
				"telegram_user_id", tg.ID,
				"error", err.Error())
			abort(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user stored by Middleware.
func UserFrom(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}

// SetUser is a test hook for handlers exercised without the middleware.
func SetUser(c *gin.Context, user *entities.User) {
	c.Set(contextUserKey, user)
}

func parseUnverified(initData string) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, errors.Unauthenticated("malformed init data")
	}
	return parseUser(values.Get("user"))
}

func abort(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.AbortWithStatusJSON(code.HTTPStatus(), gin.H{
		"error": errors.GetMessage(err),
		"code":  code.String(),
	})
}
