package handlers

import (
	"context"
	"errors"
	"math"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type programApplicationService interface {
	CreateProgram(ctx context.Context, input services.ProgramFields) (*models.GymProgram, error)
	ListPrograms(ctx context.Context) ([]models.GymProgram, error)
	GetProgram(ctx context.Context, id string) (*models.GymProgram, error)
	UpdateProgram(ctx context.Context, id string, patch services.ProgramPatch) (*models.GymProgram, error)
	DeleteProgramByName(ctx context.Context, name string) (*models.GymProgram, error)
}

// createProgramRequest keeps loosely typed fields so a wrong JSON type is
// reported as a validation message instead of a decode failure.
type createProgramRequest struct {
	Name           any   `json:"name"`
	FocusBodyPart  any   `json:"focusBodyPart"`
	Intensity      any   `json:"intensity"`
	Difficulty     any   `json:"difficulty"`
	TargetAudience any   `json:"targetAudience"`
	Reps           any   `json:"reps"`
	IsActive       *bool `json:"isActive"`
}

type updateProgramRequest struct {
	Name           *string `json:"name"`
	FocusBodyPart  *string `json:"focusBodyPart"`
	Intensity      *string `json:"intensity"`
	Difficulty     *string `json:"difficulty"`
	TargetAudience *string `json:"targetAudience"`
	Reps           *int    `json:"reps"`
	IsActive       *bool   `json:"isActive"`
}

type deleteProgramRequest struct {
	Name any `json:"name"`
}

type ProgramHandler struct {
	service programApplicationService
	logger  *zap.Logger
}

func NewProgramHandler(service programApplicationService, logger *zap.Logger) *ProgramHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramHandler{service: service, logger: logger}
}

func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	var req createProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"errors": []string{"Invalid request body"}})
	}

	program, err := h.service.CreateProgram(c.Context(), req.toFields())
	if err != nil {
		return h.mapProgramError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Program created successfully!",
		"program": program,
	})
}

func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	programs, err := h.service.ListPrograms(c.Context())
	if err != nil {
		return h.mapProgramError(c, err)
	}
	if programs == nil {
		programs = []models.GymProgram{}
	}

	if req, ok := parsePageRequest(c); ok {
		page, meta := paginate(programs, req)
		return c.JSON(fiber.Map{"programs": page, "pagination": meta})
	}
	return c.JSON(fiber.Map{"programs": programs})
}

func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	program, err := h.service.GetProgram(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapProgramError(c, err)
	}

	return c.JSON(fiber.Map{"program": program})
}

func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	var req updateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	program, err := h.service.UpdateProgram(c.Context(), c.Params("id"), services.ProgramPatch{
		Name:           req.Name,
		FocusBodyPart:  req.FocusBodyPart,
		Intensity:      req.Intensity,
		Difficulty:     req.Difficulty,
		TargetAudience: req.TargetAudience,
		Reps:           req.Reps,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return h.mapProgramError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Program updated successfully!",
		"program": program,
	})
}

func (h *ProgramHandler) DeleteProgramByName(c *fiber.Ctx) error {
	var req deleteProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Name is required and must be a string."})
	}

	name, ok := req.Name.(string)
	if !ok || name == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Name is required and must be a string."})
	}

	if _, err := h.service.DeleteProgramByName(c.Context(), name); err != nil {
		return h.mapProgramError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Program deleted successfully."})
}

func (h *ProgramHandler) mapProgramError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErr.Messages})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found."})
	default:
		h.logger.Error("program request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process program request"})
	}
}

func (r createProgramRequest) toFields() services.ProgramFields {
	return services.ProgramFields{
		Name:           stringValue(r.Name),
		FocusBodyPart:  stringValue(r.FocusBodyPart),
		Intensity:      stringValue(r.Intensity),
		Difficulty:     stringValue(r.Difficulty),
		TargetAudience: stringValue(r.TargetAudience),
		Reps:           wholeNumber(r.Reps),
		IsActive:       r.IsActive,
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// wholeNumber returns v as an int when it is a JSON number without a
// fractional part, and nil otherwise.
func wholeNumber(v any) *int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	n := int(f)
	return &n
}
