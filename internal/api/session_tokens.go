package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/nutrigoal/internal/models"
)

const (
	authCookieName = "nutrigoal_auth"

	shortSessionLifetime    = 7 * 24 * time.Hour
	rememberSessionLifetime = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func sessionLifetime(rememberMe bool) time.Duration {
	if rememberMe {
		return rememberSessionLifetime
	}
	return shortSessionLifetime
}

func (handler *Handler) issueSessionToken(user *models.User, issuedAt time.Time, lifetime time.Duration) (string, error) {
	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

// parseSessionToken accepts only HS256 tokens that carry an expiry still in
// the future according to handler.now.
func (handler *Handler) parseSessionToken(raw string) (*authClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(handler.now),
	)
	claims := &authClaims{}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return handler.secretKey, nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}

// sessionCookie builds the auth cookie. A zero expires makes it a browser
// session cookie; a past one tells the browser to drop it.
func (handler *Handler) sessionCookie(token string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
