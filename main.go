package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/yahamanand-svg/School/app/config"
	"github.com/yahamanand-svg/School/app/database"
	marksvc "github.com/yahamanand-svg/School/app/marks"
	"github.com/yahamanand-svg/School/app/performance"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/routes/marks"
	"github.com/yahamanand-svg/School/app/routes/students"
	"github.com/yahamanand-svg/School/app/routes/subjects"
	"github.com/yahamanand-svg/School/app/routes/teachers"
	"github.com/yahamanand-svg/School/app/services"
)

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.Load()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	services.StartScheduler(config.GetDB())

	st := database.NewPostgresStore(config.GetDB())
	resolver := marksvc.NewResolver(st)
	service := marksvc.NewService(st, resolver)
	aggregator := performance.NewAggregator(st)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app, st)
	marks.SetupMarksRoutes(app, service)
	students.SetupStudentsRoutes(app, st, aggregator)
	teachers.SetupTeachersRoutes(app, st, resolver)
	subjects.SetupSubjectsRoutes(app, st)

	log.Println("Starting server on port " + config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
