package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "orderflow.actor"

var errNoActor = echo.NewHTTPError(http.StatusUnauthorized, "missing caller")

// Claims are the access token claims. The subject is the user UUID.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenParser verifies HS256 access tokens.
type TokenParser struct {
	secret []byte
}

// NewTokenParser creates a parser for tokens signed with secret.
func NewTokenParser(secret string) TokenParser {
	return TokenParser{secret: []byte(secret)}
}

// Parse verifies raw and returns the actor it was issued to.
func (p TokenParser) Parse(raw string) (kernel.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(userID, role)
}

// Issue signs a token for actor valid for ttl. Used by the token CLI command and tests.
func (p TokenParser) Issue(actor kernel.Actor, ttl time.Duration, now time.Time) (string, error) {
	if actor.UserID().IsZero() {
		return "", errors.New("actor has no user id")
	}
	claims := Claims{
		Role: string(actor.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Auth requires a valid bearer token and stores the caller in the request context.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			actor, err := parser.Parse(strings.TrimSpace(raw))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errNoActor
	}
	return actor, nil
}
