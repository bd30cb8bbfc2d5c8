package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
)

// ContextActorKey is the echo context key storing the authenticated actor.
const ContextActorKey = "actor"

// Claims carries the numeric user id in sub and the workflow role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth requires a valid HS256 bearer token and stores the actor on the context.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return fail(c, apperror.Clone(apperror.ErrUnauthenticated, "missing bearer token"))
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return fail(c, apperror.Clone(apperror.ErrUnauthenticated, "invalid authorization header"))
			}

			actor, err := ParseToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				return fail(c, err)
			}
			c.Set(ContextActorKey, actor)
			return next(c)
		}
	}
}

// ParseToken validates the token and maps its claims onto an actor.
func ParseToken(secret []byte, raw string) (workflow.Actor, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return workflow.Actor{}, apperror.Wrap(err, apperror.ErrUnauthenticated, "invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return workflow.Actor{}, apperror.Clone(apperror.ErrUnauthenticated, "invalid token claims")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return workflow.Actor{}, apperror.Clone(apperror.ErrUnauthenticated, "token subject must be a numeric user id")
	}
	role, ok := workflow.ParseRole(claims.Role)
	if !ok {
		return workflow.Actor{}, apperror.Clone(apperror.ErrUnauthenticated, "token carries an unknown role")
	}
	return workflow.Actor{UserID: id, Role: role}, nil
}

// IssueToken signs an HS256 token for the actor; used by the CLI and tests.
func IssueToken(secret []byte, a workflow.Actor, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(a.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ActorFrom returns the actor stored by Auth.
func ActorFrom(c echo.Context) (workflow.Actor, bool) {
	a, ok := c.Get(ContextActorKey).(workflow.Actor)
	return a, ok
}

func fail(c echo.Context, err error) error {
	e := apperror.FromError(err)
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, map[string]string{"error": e.Message, "code": e.Code})
}
