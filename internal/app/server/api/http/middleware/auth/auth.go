package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

const bearerPrefix = "Bearer "

// Auth сверяет bearer токен администратора с bcrypt хешем.
type Auth struct {
	hash []byte
	log  *slog.Logger
}

func New(tokenHash string, log *slog.Logger) *Auth {
	a := &Auth{
		hash: []byte(tokenHash),
		log:  log.With("component", "auth_middleware"),
	}
	if tokenHash == "" {
		a.log.Warn("ADMIN_TOKEN_HASH is empty, admin endpoints are disabled")
	}
	return a
}

// Verify сообщает, совпадает ли токен с настроенным хешем.
func (a *Auth) Verify(token string) bool {
	if len(a.hash) == 0 || token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(token)) == nil
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok {
			a.log.Warn("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx)
			return
		}

		if !a.Verify(token) {
			a.log.Warn("invalid admin token", "path", ctx.URL().Path, "remote_addr", ctx.RemoteAddr())
			a.unauthorized(ctx)
			return
		}

		next(ctx)
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	})
	if err != nil {
		a.log.Error("json encode", "error", err)
	}
}

// HashToken возвращает bcrypt хеш для ADMIN_TOKEN_HASH.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
