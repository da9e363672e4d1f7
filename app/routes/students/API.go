package students

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/performance"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/store"
)

type Handler struct {
	store      store.Store
	aggregator *performance.Aggregator
}

// MarksAPI lists every mark row for a student across all exam types,
// newest first, plus the recent audit history. Students may only view
// their own rows.
func (h *Handler) MarksAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	caller := auth.Identity(c)
	if !caller.IsAdmin() && !(caller.IsStudent() && caller.StudentID == studentID) {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	if _, err := h.store.StudentByID(studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	marks, err := h.store.MarksByStudent(studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch marks"})
	}

	history, err := h.store.MarksHistoryByStudent(studentID, 10)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	examTypes, err := h.store.DistinctExamTypes(studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch exam types"})
	}

	return c.JSON(fiber.Map{
		"marks":      marks,
		"history":    history,
		"exam_types": examTypes,
	})
}

// SummaryAPI returns the dashboard overview: latest exam breakdown,
// overall percentage with its whole-number headline form, exams
// appeared and recent changes.
func (h *Handler) SummaryAPI(c *fiber.Ctx) error {
	overview, err := h.aggregator.Overview(auth.Identity(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		if errors.Is(err, store.ErrNotAuthorized) {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build summary"})
	}

	return c.JSON(fiber.Map{"summary": overview})
}

// ProfileAPI returns the student record itself.
func (h *Handler) ProfileAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	caller := auth.Identity(c)
	if !caller.IsAdmin() && !(caller.IsStudent() && caller.StudentID == studentID) {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	student, err := h.store.StudentByID(studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if student.ClassSectionID != nil && student.ClassSection == nil {
		if cs, err := h.store.ClassSectionByID(*student.ClassSectionID); err == nil {
			student.ClassSection = cs
		}
	}

	return c.JSON(fiber.Map{"student": student})
}
