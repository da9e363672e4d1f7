package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/performance"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/store"
)

func SetupStudentsRoutes(app *fiber.App, st store.Store, aggregator *performance.Aggregator) {
	h := &Handler{store: st, aggregator: aggregator}

	grp := app.Group("/api/students")
	grp.Use(auth.AuthMiddleware)

	grp.Get("/:id", h.ProfileAPI)
	grp.Get("/:id/marks", h.MarksAPI)
	grp.Get("/:id/summary", h.SummaryAPI)
}
