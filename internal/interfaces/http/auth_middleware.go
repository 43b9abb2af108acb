package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/pkg/jwt"
)

// LocalActor key de Fiber Locals con el actor autenticado.
const LocalActor = "actor"

// ActorMiddleware toma el actor del Bearer Token para la auditoría de movimientos y transacciones.
// El token es opcional: sin header se continúa sin actor; un token presente pero inválido es 401.
// Con secret vacío no se interpreta ningún token.
func ActorMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || jwtSecret == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		actor, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto o "" si la petición no trae token.
func GetActor(c *fiber.Ctx) string {
	v := c.Locals(LocalActor)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
