package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/models"
)

const contextUserKey = "current_user"

var errMissingToken = errors.New("missing auth token")

// AuthRequired resolves the caller from a Bearer token or the session cookie
// and stores the user in Locals for currentUser.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// AdminOnly guards reference-data writes. It must run after AuthRequired.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.IsAdmin() {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	raw := requestToken(c)
	if raw == "" {
		return nil, errMissingToken
	}
	claims, err := handler.parseSessionToken(raw)
	if err != nil {
		return nil, err
	}
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// requestToken prefers the Authorization header over the session cookie.
func requestToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(c.Cookies(authCookieName))
}
