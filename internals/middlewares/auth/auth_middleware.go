// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sekolahku_backend/internals/configs"
)

// AuthMiddleware memverifikasi JWT lalu menaruh user_id & role di locals.
// Identitas & role datang dari layanan auth eksternal; engine ini hanya
// mempercayai klaim yang sudah ditandatangani.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractStringClaim(claims, "user_id", "id", "sub")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		role, _ := extractStringClaim(claims, "role")

		c.Locals("user_id", userID)
		c.Locals("role", strings.ToLower(strings.TrimSpace(role)))
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), nil
		}
		return "", errors.New("Unauthorized - Malformed Authorization header")
	}
	// fallback cookie (web client)
	if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
		return tok, nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractStringClaim(claims jwt.MapClaims, keys ...string) (string, error) {
	for _, k := range keys {
		if v, ok := claims[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), nil
			}
		}
	}
	return "", errors.New("claim not found")
}
