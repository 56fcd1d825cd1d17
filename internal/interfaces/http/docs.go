package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// MountSwagger monta la UI de documentación solo si el JSON generado existe.
// El archivo sale de una herramienta externa y puede no estar en el deploy;
// su ausencia no debe impedir el arranque de la API. Devuelve si se montó.
func MountSwagger(app *fiber.App, filePath, title string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
