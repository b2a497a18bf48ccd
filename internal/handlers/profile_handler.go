package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/stylahq/styla-backend/internal/dto"
	"github.com/stylahq/styla-backend/internal/middleware"
	"github.com/stylahq/styla-backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// SubmitDetail stores the caller's onboarding form. Resubmission updates the
// existing profile.
func (h *ProfileHandler) SubmitDetail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.profiles.SubmitProfile(user.ID, &req); err != nil {
		slog.Error("profile submission failed", "action", "profile.submit", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "User detail added"})
}

// CheckInfo returns the caller's profile, or 404 when onboarding is still
// pending.
func (h *ProfileHandler) CheckInfo(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	detail, err := h.profiles.GetProfile(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User profile not completed yet",
			})
		}
		slog.Error("profile lookup failed", "action", "profile.get", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(detail)
}

// ListCustomers feeds the stylist's customer picker: role-user accounts
// joined with their profiles.
func (h *ProfileHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.profiles.ListCustomers()
	if err != nil {
		slog.Error("customer listing failed", "action", "profile.customers", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(customers)
}
