package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Identify resolves the acting user for each request. A valid bearer token
// wins; anything else falls back to the configured default user so the app
// works without an account.
func Identify(secret, defaultUser string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			userID := defaultUser

			if tokenString := extractToken(ctx); tokenString != "" {
				token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
					return []byte(secret), nil
				})
				switch {
				case err != nil || !token.Valid:
					logger.Debug("ignoring invalid bearer token", zap.Error(err))
				default:
					if claims, ok := token.Claims.(jwt.MapClaims); ok {
						if id, ok := claims["user_id"].(string); ok && id != "" {
							userID = id
						}
					}
				}
			}

			ctx.Request.Header.Set("X-User-ID", userID)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
