package teachers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/marks"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/store"
)

var validate = validator.New()

type Handler struct {
	store    store.Store
	resolver *marks.Resolver
}

type createTeacherRequest struct {
	TeacherID string  `json:"teacher_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Password  string  `json:"password" validate:"required,min=8"`
}

// CreateTeacherAPI registers a new teacher account.
func (h *Handler) CreateTeacherAPI(c *fiber.Ctx) error {
	var req createTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	teacher := &models.Teacher{
		TeacherID: req.TeacherID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashed,
	}
	if err := h.store.CreateTeacher(teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

// GetAssignmentsAPI lists a teacher's assignment rows. Teachers may
// read their own; admins may read anyone's.
func (h *Handler) GetAssignmentsAPI(c *fiber.Ctx) error {
	teacherID := c.Params("id")
	caller := auth.Identity(c)
	if !caller.IsAdmin() && caller.TeacherID != teacherID {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	assignments, err := h.store.AssignmentsByTeacher(teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(fiber.Map{"assignments": assignments})
}

type assignmentPair struct {
	ClassSectionID string `json:"class_section_id" validate:"required"`
	SubjectID      string `json:"subject_id" validate:"required"`
}

type replaceAssignmentsRequest struct {
	Assignments []assignmentPair `json:"assignments" validate:"dive"`
}

// ReplaceAssignmentsAPI swaps a teacher's entire assignment set. An
// empty list is valid and strips every grant. The resolver cache is
// invalidated so the new grants take effect immediately.
func (h *Handler) ReplaceAssignmentsAPI(c *fiber.Ctx) error {
	teacherID := c.Params("id")

	if _, err := h.store.TeacherByID(teacherID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req replaceAssignmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	assignments := make([]*models.Assignment, 0, len(req.Assignments))
	for _, pair := range req.Assignments {
		if _, err := h.store.ClassSectionByID(pair.ClassSectionID); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown class section: " + pair.ClassSectionID})
		}
		if _, err := h.store.SubjectByID(pair.SubjectID); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown subject: " + pair.SubjectID})
		}
		assignments = append(assignments, &models.Assignment{
			ClassSectionID: pair.ClassSectionID,
			SubjectID:      pair.SubjectID,
		})
	}

	if err := h.store.ReplaceTeacherAssignments(teacherID, assignments); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update assignments"})
	}
	h.resolver.Invalidate(teacherID)

	updated, err := h.store.AssignmentsByTeacher(teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(fiber.Map{
		"message":     "Assignments updated successfully",
		"assignments": updated,
	})
}
