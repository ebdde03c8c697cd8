package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's api type so the composition root
// can collect them into a single fx group and register them in one pass.
type Route interface {
	Setup(app *fiber.App)
}
