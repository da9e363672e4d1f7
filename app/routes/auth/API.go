package auth

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

var validate = validator.New()

type Handler struct {
	store store.Store
}

// LoginRequest carries role-specific credentials: students log in by
// admission ID, teachers by teacher ID, admins by email.
type LoginRequest struct {
	Role       string `json:"role" validate:"required,oneof=admin teacher student"`
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (h *Handler) LoginAPI(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	identity, hash, err := h.lookup(req.Role, req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, hash) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(identity)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    identity,
	})
}

// lookup resolves the account for a role and returns the identity plus
// the stored password hash for verification.
func (h *Handler) lookup(role, identifier string) (models.Identity, string, error) {
	switch role {
	case "admin":
		admin, err := h.store.AdminByEmail(identifier)
		if err != nil {
			return models.Identity{}, "", err
		}
		return models.Identity{
			Role: models.RoleAdmin, UserID: admin.ID,
			Name: admin.Name, Email: admin.Email,
		}, admin.Password, nil
	case "teacher":
		teacher, err := h.store.TeacherByTeacherID(identifier)
		if err != nil {
			return models.Identity{}, "", err
		}
		return models.Identity{
			Role: models.RoleTeacher, UserID: teacher.ID, TeacherID: teacher.ID,
			Name: teacher.Name, Email: teacher.Email,
		}, teacher.Password, nil
	default:
		student, err := h.store.StudentByAdmissionID(identifier)
		if err != nil {
			return models.Identity{}, "", err
		}
		identity := models.Identity{
			Role: models.RoleStudent, UserID: student.ID, StudentID: student.ID,
			Name: student.Name,
		}
		if student.Email != nil {
			identity.Email = *student.Email
		}
		return identity, student.Password, nil
	}
}

func (h *Handler) LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *Handler) MeAPI(c *fiber.Ctx) error {
	identity := c.Locals("identity").(models.Identity)
	return c.JSON(fiber.Map{"user": identity})
}
