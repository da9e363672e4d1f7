package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/marks"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/store"
)

func SetupTeachersRoutes(app *fiber.App, st store.Store, resolver *marks.Resolver) {
	h := &Handler{store: st, resolver: resolver}

	grp := app.Group("/api/teachers")
	grp.Use(auth.AuthMiddleware)

	grp.Get("/:id/assignments", auth.RequireRoles(models.RoleAdmin, models.RoleTeacher), h.GetAssignmentsAPI)

	admin := grp.Group("", auth.RequireRoles(models.RoleAdmin))
	admin.Post("/", h.CreateTeacherAPI)
	admin.Put("/:id/assignments", h.ReplaceAssignmentsAPI)
}
