package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coach-seat-reservation/internal/config"
    "github.com/iliyamo/coach-seat-reservation/internal/utils"
)

// AuthHandler issues operator access tokens.  There is a single operator
// account configured through OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH.
type AuthHandler struct {
    Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
    return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
    if h.Cfg.OperatorEmail == "" || h.Cfg.OperatorPasswordHash == "" {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "operator login disabled"})
    }
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    email := strings.ToLower(strings.TrimSpace(req.Email))
    if email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }
    // The bcrypt compare runs for every attempt, matching email or not.
    passOK := utils.VerifyPassword(h.Cfg.OperatorPasswordHash, req.Password)
    if email != strings.ToLower(h.Cfg.OperatorEmail) || !passOK {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, email, utils.RoleOperator, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "role":   utils.RoleOperator,
        "access": tokenPart{Token: access.Token, Expires: access.Exp},
    })
}
