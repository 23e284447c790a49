package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func runIdentify(t *testing.T, authorization string) string {
	t.Helper()

	var seen string
	handler := Identify(testSecret, "demo_user_123", nil)(func(ctx *fasthttp.RequestCtx) {
		seen = string(ctx.Request.Header.Peek("X-User-ID"))
	})

	var ctx fasthttp.RequestCtx
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	handler(&ctx)
	return seen
}

func TestIdentifyDefaultsToDemoUser(t *testing.T) {
	assert.Equal(t, "demo_user_123", runIdentify(t, ""))
}

func TestIdentifyAcceptsValidBearer(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"user_id": "alice"})
	assert.Equal(t, "alice", runIdentify(t, "Bearer "+token))
}

func TestIdentifyFallsBackOnInvalidToken(t *testing.T) {
	assert.Equal(t, "demo_user_123", runIdentify(t, "Bearer not-a-token"))
}

func TestIdentifyFallsBackOnMissingClaim(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "alice"})
	assert.Equal(t, "demo_user_123", runIdentify(t, "Bearer "+token))
}

func TestIdentifyIgnoresHeaderSmuggling(t *testing.T) {
	// A client-supplied X-User-ID must be overwritten by the middleware.
	var seen string
	handler := Identify(testSecret, "demo_user_123", nil)(func(ctx *fasthttp.RequestCtx) {
		seen = string(ctx.Request.Header.Peek("X-User-ID"))
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("X-User-ID", "intruder")
	handler(&ctx)
	assert.Equal(t, "demo_user_123", seen)
}
