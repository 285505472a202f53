package handlers

import (
	"context"
	"errors"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type memberApplicationService interface {
	CreateMember(ctx context.Context, input services.MemberInput) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	UpdateMember(ctx context.Context, id string, input services.MemberInput) (*models.Member, error)
	DeleteMember(ctx context.Context, id string) error
	AssignProgram(ctx context.Context, memberID, programID string) (*models.Member, error)
}

type memberRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type MemberHandler struct {
	service memberApplicationService
	logger  *zap.Logger
}

func NewMemberHandler(service memberApplicationService, logger *zap.Logger) *MemberHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberHandler{service: service, logger: logger}
}

func (h *MemberHandler) CreateMember(c *fiber.Ctx) error {
	var req memberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	member, err := h.service.CreateMember(c.Context(), services.MemberInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return h.mapMemberError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Member created successfully!",
		"member":  member,
	})
}

func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.service.ListMembers(c.Context())
	if err != nil {
		return h.mapMemberError(c, err)
	}
	if members == nil {
		members = []models.Member{}
	}

	if req, ok := parsePageRequest(c); ok {
		page, meta := paginate(members, req)
		return c.JSON(fiber.Map{"members": page, "pagination": meta})
	}
	return c.JSON(fiber.Map{"members": members})
}

func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	member, err := h.service.GetMember(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapMemberError(c, err)
	}

	return c.JSON(fiber.Map{"member": member})
}

func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	var req memberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	member, err := h.service.UpdateMember(c.Context(), c.Params("id"), services.MemberInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return h.mapMemberError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Member updated successfully!",
		"member":  member,
	})
}

func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	if err := h.service.DeleteMember(c.Context(), c.Params("id")); err != nil {
		return h.mapMemberError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Member deleted successfully."})
}

func (h *MemberHandler) AssignProgram(c *fiber.Ctx) error {
	member, err := h.service.AssignProgram(c.Context(), c.Params("id"), c.Params("programId"))
	if err != nil {
		return h.mapMemberError(c, err)
	}

	return c.JSON(fiber.Map{"member": member})
}

func (h *MemberHandler) mapMemberError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErr.Messages})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member or program not found."})
	case errors.Is(err, repository.ErrAlreadyLinked):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "Program is already assigned to this member."})
	default:
		h.logger.Error("member request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process member request"})
	}
}
