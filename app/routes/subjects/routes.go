package subjects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/store"
)

func SetupSubjectsRoutes(app *fiber.App, st store.Store) {
	h := &Handler{store: st}

	grp := app.Group("/api/subjects")
	grp.Use(auth.AuthMiddleware)
	grp.Get("/", h.ListAPI)
	grp.Post("/sync", auth.RequireRoles(models.RoleAdmin), h.SyncAPI)

	sections := app.Group("/api/class-sections")
	sections.Use(auth.AuthMiddleware)
	sections.Get("/", h.ClassSectionsAPI)
}
