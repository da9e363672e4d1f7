package subjects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/curriculum"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

type Handler struct {
	store store.Store
}

// ListAPI lists the subjects applicable to a class. The class query
// accepts the same labels student records carry, decimal or Roman.
func (h *Handler) ListAPI(c *fiber.Ctx) error {
	class := c.Query("class")
	if class == "" {
		return c.Status(400).JSON(fiber.Map{"error": "class is required"})
	}
	classNum, ok := curriculum.ParseClassNumber(class)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unrecognized class: " + class})
	}

	subjects, err := h.store.SubjectsForClassNumber(classNum)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}

	return c.JSON(fiber.Map{"subjects": subjects})
}

// SyncAPI seeds the subjects table from the fixed curriculum mapping.
// Existing rows are refreshed by name, so the sync is idempotent.
func (h *Handler) SyncAPI(c *fiber.Ctx) error {
	var synced []*models.Subject
	for _, mapping := range curriculum.SubjectMappings {
		sub := &models.Subject{
			Name:                mapping.Name,
			Code:                mapping.Code,
			ApplicableFromClass: mapping.FromClass,
			ApplicableToClass:   mapping.ToClass,
		}
		if err := h.store.UpsertSubject(sub); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to sync subject " + mapping.Name})
		}
		synced = append(synced, sub)
	}

	return c.JSON(fiber.Map{
		"message":  "Subjects synced successfully",
		"subjects": synced,
	})
}

// ClassSectionsAPI lists every class-section for assignment editing.
func (h *Handler) ClassSectionsAPI(c *fiber.Ctx) error {
	sections, err := h.store.ListClassSections()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch class sections"})
	}

	return c.JSON(fiber.Map{"class_sections": sections})
}
