package marks

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/marks"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/routes/auth"
)

func SetupMarksRoutes(app *fiber.App, service *marks.Service) {
	h := &Handler{service: service}

	grp := app.Group("/api/marks")
	grp.Use(auth.AuthMiddleware)
	grp.Use(auth.RequireRoles(models.RoleAdmin, models.RoleTeacher))

	grp.Get("/students/search", h.SearchStudentAPI)
	grp.Get("/students/:id", h.SheetAPI)
	grp.Post("/students/:id", h.SaveAPI)
}
