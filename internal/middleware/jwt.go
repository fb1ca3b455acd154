package middleware // reusable HTTP middleware for the coach API

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coach-seat-reservation/internal/utils"
)

const operatorKey = "operator"

// OperatorOnly guards the endpoints that rewrite the coach or expose the
// booking history.  The request needs a Bearer access token signed with
// secret (401 otherwise) whose role is OPERATOR (403 otherwise).  The token
// subject is available to handlers through Operator.
func OperatorOnly(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearerToken(c.Request())
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            if claims.Role != utils.RoleOperator {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            c.Set(operatorKey, claims.Subject)
            return next(c)
        }
    }
}

// Operator returns the subject of the operator token admitted by
// OperatorOnly, or "" outside an operator route.
func Operator(c echo.Context) string {
    s, _ := c.Get(operatorKey).(string)
    return s
}

func bearerToken(r *http.Request) (string, bool) {
    scheme, token, ok := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
    if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
        return "", false
    }
    return token, true
}
