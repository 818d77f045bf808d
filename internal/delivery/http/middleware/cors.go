package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Origin'ы локальной разработки клиента карты
const devOrigins = "http://localhost:3000,http://localhost:5173"

// CORS ограничивает cross-origin доступ разрешенными origin'ами
// клиента карты
func CORS(allowOrigins string) fiber.Handler {
	if allowOrigins == "" {
		allowOrigins = devOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,Authorization",
		AllowCredentials: true,
	})
}
