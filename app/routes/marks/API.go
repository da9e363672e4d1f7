package marks

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/marks"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/routes/auth"
)

var validate = validator.New()

type Handler struct {
	service *marks.Service
}

// SearchStudentAPI finds a student by admission ID and returns them
// together with the subjects the caller may grade. 404 and 403 are
// kept distinct so the client can show the right message.
func (h *Handler) SearchStudentAPI(c *fiber.Ctx) error {
	admissionID := c.Query("admission_id")
	if admissionID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "admission_id is required"})
	}

	caller := auth.Identity(c)
	student, err := h.service.SearchStudent(caller, admissionID)
	if err != nil {
		if marks.IsNotFound(err) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		if marks.IsNotAuthorized(err) {
			return c.Status(403).JSON(fiber.Map{"error": "You are not assigned to this student's class"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	subjects, err := h.service.PermittedSubjects(caller, student)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve subjects"})
	}

	return c.JSON(fiber.Map{
		"student":  student,
		"subjects": subjects,
	})
}

// SheetAPI loads the editable sheet for one student and exam type.
func (h *Handler) SheetAPI(c *fiber.Ctx) error {
	examType, ok := models.ParseExamType(c.Query("exam_type"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid exam type"})
	}

	sheet, err := h.service.LoadSheet(auth.Identity(c), c.Params("id"), examType)
	if err != nil {
		if marks.IsNotFound(err) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		if marks.IsNotAuthorized(err) {
			return c.Status(403).JSON(fiber.Map{"error": "You are not assigned to this student's class"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load marks"})
	}

	return c.JSON(fiber.Map{"sheet": sheet})
}

type saveEntry struct {
	SubjectID     string   `json:"subject_id" validate:"required"`
	MarksObtained *float64 `json:"marks_obtained"`
	Remarks       *string  `json:"remarks"`
}

type saveRequest struct {
	ExamType string      `json:"exam_type" validate:"required"`
	Entries  []saveEntry `json:"entries" validate:"required,min=1,dive"`
}

// SaveAPI applies edits to a freshly loaded sheet and persists it row
// by row, returning per-subject outcomes plus the reloaded sheet.
func (h *Handler) SaveAPI(c *fiber.Ctx) error {
	var req saveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	examType, ok := models.ParseExamType(req.ExamType)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid exam type"})
	}

	caller := auth.Identity(c)
	studentID := c.Params("id")

	sheet, err := h.service.LoadSheet(caller, studentID, examType)
	if err != nil {
		if marks.IsNotFound(err) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		if marks.IsNotAuthorized(err) {
			return c.Status(403).JSON(fiber.Map{"error": "You are not assigned to this student's class"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load marks"})
	}

	for _, e := range req.Entries {
		if e.MarksObtained != nil {
			if !sheet.SetObtained(e.SubjectID, *e.MarksObtained) {
				return c.Status(400).JSON(fiber.Map{"error": "Subject not on sheet: " + e.SubjectID})
			}
		}
		if e.Remarks != nil {
			sheet.SetRemarks(e.SubjectID, *e.Remarks)
		}
	}

	result, err := h.service.Save(caller, sheet)
	if err != nil {
		if marks.IsNotAuthorized(err) {
			return c.Status(403).JSON(fiber.Map{"error": "You are not assigned to this student's class"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save marks"})
	}

	reloaded, err := h.service.LoadSheet(caller, studentID, examType)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload marks"})
	}

	status := 200
	if result.Failed > 0 {
		status = 207
	}
	return c.Status(status).JSON(fiber.Map{
		"result": result,
		"sheet":  reloaded,
	})
}
