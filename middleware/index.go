package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MPIO1002/CINEME-sub001/config"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// OptionalJWT đọc token nhân viên nếu có (luồng đặt vé tại quầy);
// không có token thì vẫn đi tiếp như khách vãng lai
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals("employee", nil)
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(config.Config("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.Locals("employee", nil)
			return c.Next()
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Locals("employee", nil)
			return c.Next()
		}

		claim := &model.TokenClaim{}
		if v, ok := claims["employeeId"].(string); ok {
			claim.EmployeeId = v
		}
		if v, ok := claims["username"].(string); ok {
			claim.Username = v
		}
		if v, ok := claims["role"].(string); ok {
			claim.Role = v
		}
		c.Locals("employee", claim)
		return c.Next()
	}
}

// OwnerKey xác định chủ phiên: nhân viên theo token, guest theo header
// X-Guest-Session, không có gì thì cấp session id guest mới
func OwnerKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claim, ok := c.Locals("employee").(*model.TokenClaim); ok && claim != nil && claim.EmployeeId != "" {
			c.Locals("ownerKey", "EMP_"+claim.EmployeeId)
			return c.Next()
		}
		if guest := c.Get("X-Guest-Session"); guest != "" {
			c.Locals("ownerKey", guest)
			return c.Next()
		}
		c.Locals("ownerKey", "GUEST_"+uuid.New().String())
		return c.Next()
	}
}

// EmployeeId lấy id nhân viên từ context, rỗng nếu là guest
func EmployeeId(c *fiber.Ctx) string {
	if claim, ok := c.Locals("employee").(*model.TokenClaim); ok && claim != nil {
		return claim.EmployeeId
	}
	return ""
}
