package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/models"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		return apiError(c, fiber.StatusBadRequest, "email and password are required")
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	return handler.respondWithSession(c, &user, credentials.RememberMe, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := loginThrottleKey(c, credentials.Email)
	now := handler.now()
	if handler.loginLimiter.exhausted(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	handler.loginLimiter.forget(limiterKey)

	return handler.respondWithSession(c, &user, credentials.RememberMe, fiber.StatusOK)
}

func (handler *Handler) respondWithSession(c *fiber.Ctx, user *models.User, rememberMe bool, status int) error {
	issuedAt := handler.now()
	lifetime := sessionLifetime(rememberMe)
	token, err := handler.issueSessionToken(user, issuedAt, lifetime)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	// Without remember-me the cookie lives for the browser session only.
	var cookieExpiry time.Time
	if rememberMe {
		cookieExpiry = issuedAt.Add(lifetime)
	}
	c.Cookie(handler.sessionCookie(token, cookieExpiry))
	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user":  newUserView(*user),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(handler.sessionCookie("", handler.now().Add(-time.Hour)))
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CurrentAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newUserView(*user))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return respondServiceError(c, err)
	}
	return apiMessage(c, fiber.StatusOK, "password changed")
}
